package user

import (
	"context"

	"github.com/amethyst-live/identity/core/schema"
)

// TokenLength is the length of generated bearer tokens.
const TokenLength = 255

// Provider identifies an external identity provider whose user id can be
// linked to an account.
type Provider string

const (
	ProviderGoogle  Provider = "google"
	ProviderGitHub  Provider = "github"
	ProviderGitLab  Provider = "gitlab"
	ProviderDiscord Provider = "discord"
)

// field returns the document field holding the provider's user id.
func (p Provider) field() string {
	return string(p) + "UserId"
}

// User represents one account. UID is the public identifier; Token, when
// present, is the sole bearer-credential secret and is never regenerated
// implicitly.
type User struct {
	schema.Model `bson:",inline"`

	UID              string `bson:"uid" json:"uid"`
	Email            string `bson:"email" json:"email"`
	EmailVerified    bool   `bson:"emailVerified" json:"emailVerified"`
	EmailDeliverable bool   `bson:"emailDeliverable" json:"emailDeliverable"`
	FirstName        string `bson:"firstName" json:"firstName"`
	LastName         string `bson:"lastName" json:"lastName"`
	DateOfBirth      string `bson:"dateOfBirth" json:"dateOfBirth"`

	Token string `bson:"token,omitempty" json:"-"`

	// External identity linkage. Each field is set at most once and never
	// overwritten; linkage is additive.
	GoogleUserID  string `bson:"googleUserId,omitempty" json:"-"`
	GithubUserID  string `bson:"githubUserId,omitempty" json:"-"`
	GitlabUserID  string `bson:"gitlabUserId,omitempty" json:"-"`
	DiscordUserID string `bson:"discordUserId,omitempty" json:"-"`
}

// ProviderID returns the linked external id for the provider, empty when
// not linked.
func (u *User) ProviderID(p Provider) string {
	switch p {
	case ProviderGoogle:
		return u.GoogleUserID
	case ProviderGitHub:
		return u.GithubUserID
	case ProviderGitLab:
		return u.GitlabUserID
	case ProviderDiscord:
		return u.DiscordUserID
	}
	return ""
}

// IsLinked reports whether the provider's id is set.
func (u *User) IsLinked(p Provider) bool {
	return u.ProviderID(p) != ""
}

func (u *User) setProviderID(p Provider, id string) {
	switch p {
	case ProviderGoogle:
		u.GoogleUserID = id
	case ProviderGitHub:
		u.GithubUserID = id
	case ProviderGitLab:
		u.GitlabUserID = id
	case ProviderDiscord:
		u.DiscordUserID = id
	}
}

// Store is the account persistence contract.
type Store interface {
	// GetByIdentifier resolves a user by any one of uid, email, or a
	// linked external-provider id. Returns nil on a miss.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)

	// Create validates and persists a new account. Empty UID and Token
	// fields are filled with fresh unique values through a bounded
	// collision-retry loop.
	Create(ctx context.Context, u *User) error

	// LinkProvider attaches an external id to the account owning uid.
	// The link is one-time and additive: an already-linked provider field
	// is left untouched.
	LinkProvider(ctx context.Context, uid string, p Provider, providerID string) error
}
