package client

import "github.com/dmitrijs2005/madhelp/internal/client/models"

func signupFixture(cv string, dars ...string) models.SignupRequest {
	return models.SignupRequest{
		Username:        "bucky",
		Email:           "bucky@wisc.edu",
		Password:        "pw",
		ConfirmPassword: "pw",
		CVPath:          cv,
		DARSPaths:       dars,
	}
}
