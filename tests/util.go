package testutil

import (
	"testing"
	"time"

	"github.com/knowledgeflow/backend/core/track"
	"github.com/knowledgeflow/backend/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	fullName, uname, email, pwd string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		FullName:  fullName,
		Username:  uname,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(): %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateProgress(
	t *testing.T,
	repo track.Repository,
	userID, moduleID, percent int,
	completed bool,
) track.Progress {
	rec, err := repo.UpsertProgress(track.Progress{
		UserID:          userID,
		ModuleID:        moduleID,
		PercentComplete: percent,
		Completed:       completed,
		UpdatedAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateProgress(): %v", err)
	}
	return rec
}
