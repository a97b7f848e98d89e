package profilesvc

import (
	"net/url"

	"github.com/AyoPrez/sobuu-sub000/internal/domain"
	http_ "github.com/AyoPrez/sobuu-sub000/internal/infra/transport/http"
	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

//nolint:gochecknoglobals
var (
	userProfileEndpoint = http_.Function("getUserProfile")
	followingEndpoint   = http_.Function("getFollowingProfiles")
	followEndpoint      = http_.Function("followProfile")
	unfollowEndpoint    = http_.Function("unfollowProfile")
)

func userProfileCall(client *http_.Client) remote.Call[domain.Profile, Error] {
	return remote.NewCall[domain.Profile, Error](client, "get_user_profile", userProfileEndpoint, url.Values{})
}

func followingCall(client *http_.Client) remote.Call[[]domain.Profile, Error] {
	return remote.NewCall[[]domain.Profile, Error](client, "get_following", followingEndpoint, url.Values{})
}

func followCall(client *http_.Client, operation string, ep http_.Endpoint, profileID string) remote.Call[domain.None, Error] {
	return remote.NewCall[domain.None, Error](client, operation, ep, url.Values{"profileId": {profileID}})
}
