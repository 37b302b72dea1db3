package pishock

import (
	"context"
	"time"
)

// Account holds PiShock API credentials and creates Shocker handles.
type Account struct {
	appName  string
	username string
	apiKey   string
	timeout  time.Duration
}

func NewAccount(appName, username, apiKey string) *Account {
	return &Account{
		appName:  appName,
		username: username,
		apiKey:   apiKey,
	}
}

// WithTimeout sets the per-call timeout applied to API clients created by
// this account.
func (a *Account) WithTimeout(d time.Duration) *Account {
	na := *a
	na.timeout = d
	return &na
}

// GetShocker returns a handle for the given share code with its metadata
// already fetched, so limit checks apply from the first command.
func (a *Account) GetShocker(ctx context.Context, shareCode string) (*Shocker, error) {
	s := a.GetShockerWithoutVerification(shareCode)
	if err := s.RefreshInfo(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// GetShockerWithoutVerification returns a handle without contacting the
// API. Limits are unknown until RefreshInfo is called, so only the
// protocol-absolute bounds apply.
func (a *Account) GetShockerWithoutVerification(shareCode string) *Shocker {
	var api API = NewLive(a.appName, a.username, a.apiKey, shareCode)
	if a.timeout > 0 {
		api = api.WithTimeout(a.timeout)
	}

	return NewShocker(api, shareCode)
}
