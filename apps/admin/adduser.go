package main

import (
	"time"

	"github.com/knowledgeflow/backend/core"
	"github.com/knowledgeflow/backend/core/user"
)

// addUser creates a user.User account.
func (cli *commandLine) addUser(uname, email, fullName, pwd string) error {
	now := time.Now().UTC()
	usr := user.User{
		Username:  core.CleanString(uname, true /* lower */),
		Email:     core.CleanString(email, true /* lower */),
		FullName:  core.CleanString(fullName),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.usrRepo.CreateUser(usr); err != nil {
		return err
	}
	return nil
}
