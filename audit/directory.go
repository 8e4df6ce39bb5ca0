package audit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// User is a directory account, trimmed to the fields the guest review
// works from.
type User struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// SignIn is one entry from the sign-in activity log.
type SignIn struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	UserDisplayName string    `json:"userDisplayName"`
	AppDisplayName  string    `json:"appDisplayName"`
	IPAddress       string    `json:"ipAddress"`
	CreatedDateTime time.Time `json:"createdDateTime"`
}

// GuestUsers lists every guest account in the directory, following
// pagination to the end.
func (c *Client) GuestUsers(ctx context.Context) ([]User, error) {
	q := url.Values{}
	q.Set("$filter", "userType eq 'Guest'")
	q.Set("$select", "displayName,mail,id,userPrincipalName")
	return listAll[User](ctx, c, c.base+"/users?"+q.Encode())
}

// MostRecentSignIn returns a user's newest sign-in entry, or nil when
// the user has never signed in.
func (c *Client) MostRecentSignIn(ctx context.Context, userID string) (*SignIn, error) {
	q := url.Values{}
	q.Set("$filter", fmt.Sprintf("userId eq '%s'", userID))
	q.Set("$top", "1")

	var page struct {
		Value []SignIn `json:"value"`
	}
	if err := c.getJSON(ctx, c.base+"/auditLogs/signIns?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	if len(page.Value) == 0 {
		return nil, nil
	}
	return &page.Value[0], nil
}

// SignIns lists the full sign-in activity log, following pagination to
// the end.
func (c *Client) SignIns(ctx context.Context) ([]SignIn, error) {
	return listAll[SignIn](ctx, c, c.base+"/auditLogs/signIns")
}

// GroupName returns a group's display name. Deleted groups are an
// expected state, so a 404 yields ("", nil) rather than an error.
func (c *Client) GroupName(ctx context.Context, groupID string) (string, error) {
	q := url.Values{}
	q.Set("$select", "displayName")

	var payload struct {
		DisplayName string `json:"displayName"`
	}
	err := c.getJSON(ctx, c.base+"/groups/"+url.PathEscape(groupID)+"?"+q.Encode(), &payload)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", err
	}
	return payload.DisplayName, nil
}
