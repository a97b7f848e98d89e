package authsvc

import (
	"net/http"
	"net/url"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

//nolint:gochecknoglobals
var (
	loginEndpoint         = http_.Function("getSessionToken")
	registerEndpoint      = http_.Function("registerUser")
	logoutEndpoint        = http_.Resource(http.MethodPost, "logout")
	resetPasswordEndpoint = http_.Resource(http.MethodPost, "requestPasswordReset")
	authenticateEndpoint  = http_.Endpoint{
		Method:       http.MethodGet,
		Path:         "users/me",
		StatusErrors: true,
	}
)

func loginCall(client *http_.Client, username, password string) remote.Call[domain.Session, Error] {
	return remote.NewAnonymousCall[domain.Session](client, "login", loginEndpoint,
		url.Values{
			"username": {username},
			"password": {password},
		},
		remote.NotBlank(ErrEmptyCredentials, username, password),
	)
}

func registerCall(
	client *http_.Client,
	username, email, password, firstname, lastname string,
) remote.Call[domain.User, Error] {
	return remote.NewAnonymousCall[domain.User](client, "register", registerEndpoint,
		url.Values{
			"username":  {username},
			"email":     {email},
			"password":  {password},
			"firstname": {firstname},
			"lastname":  {lastname},
		},
		remote.NotBlank(ErrEmptyCredentials, username, password, email, firstname, lastname),
		remote.Contains(ErrWrongEmailFormat, email, "@"),
	)
}

func authenticateCall(client *http_.Client) remote.Call[domain.User, Error] {
	return remote.NewCall[domain.User, Error](client, "authenticate", authenticateEndpoint, nil)
}

func logoutCall(client *http_.Client) remote.Call[domain.None, Error] {
	return remote.NewCall[domain.None, Error](client, "logout", logoutEndpoint, url.Values{})
}

func resetPasswordCall(client *http_.Client, email string) remote.Call[domain.None, Error] {
	return remote.NewAnonymousCall[domain.None](client, "reset_password", resetPasswordEndpoint,
		url.Values{"email": {email}},
		remote.NotBlank(ErrEmptyCredentials, email),
		remote.Contains(ErrWrongEmailFormat, email, "@"),
	)
}
