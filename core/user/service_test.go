package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledgeflow/backend/core"
	"github.com/knowledgeflow/backend/core/user"
	emailsvc "github.com/knowledgeflow/backend/services/email"
	inmemdb "github.com/knowledgeflow/backend/storage/database/inmem"
)

var conf = &core.Config{AppName: "KnowledgeFlow", Env: "TEST", TestMode: true}

func setup(t *testing.T) user.Service {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return user.NewService(inmemdb.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf))
}

func Test_service_Register(t *testing.T) {
	svc := setup(t)

	sentBefore := len(emailsvc.SentMessages)

	usr, err := svc.Register(user.NewUser{
		Username: "awe",
		Password: "mdr123",
		Email:    "awe@test.cd",
		FullName: "Awe Some",
	})
	require.NoError(t, err)

	assert.NotZero(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.False(t, usr.CreatedAt.IsZero())

	// password is hashed, never stored in clear
	assert.NotEmpty(t, usr.PasswordHash)
	assert.NotEqual(t, []byte("mdr123"), usr.PasswordHash)
	assert.NoError(t, usr.CheckPassword("mdr123"))
	assert.Error(t, usr.CheckPassword("nope42"))

	// a welcome email goes out
	require.Greater(t, len(emailsvc.SentMessages), sentBefore)
	mail := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	assert.Equal(t, "Welcome aboard!", mail.Subject)
	require.Len(t, mail.To, 1)
	assert.Equal(t, usr.Email, mail.To[0].Address)
}

func Test_service_Register_duplicateUsername(t *testing.T) {
	svc := setup(t)

	_, err := svc.Register(user.NewUser{Username: "awe", Password: "mdr123", Email: "awe@test.cd"})
	require.NoError(t, err)

	_, err = svc.Register(user.NewUser{Username: "awe", Password: "mdr123", Email: "other@test.cd"})
	require.Error(t, err)

	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "username", vErr.Fields[0].Field)
}

func Test_service_SetLastLogin(t *testing.T) {
	svc := setup(t)

	usr, err := svc.Register(user.NewUser{Username: "awe", Password: "mdr123", Email: "awe@test.cd"})
	require.NoError(t, err)
	assert.True(t, usr.LastLogin.IsZero())

	before := time.Now().UTC()
	usr, err = svc.SetLastLogin(usr)
	require.NoError(t, err)
	assert.False(t, usr.LastLogin.Before(before))
}
