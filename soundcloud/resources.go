package soundcloud

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
)

// User represents a SoundCloud user profile.
type User struct {
	ID             int64  `mapstructure:"id"`
	Username       string `mapstructure:"username"`
	FullName       string `mapstructure:"full_name"`
	City           string `mapstructure:"city"`
	Country        string `mapstructure:"country"`
	PermalinkURL   string `mapstructure:"permalink_url"`
	AvatarURL      string `mapstructure:"avatar_url"`
	TrackCount     int    `mapstructure:"track_count"`
	FollowersCount int    `mapstructure:"followers_count"`
}

// Track represents a SoundCloud track.
type Track struct {
	ID            int64  `mapstructure:"id"`
	Title         string `mapstructure:"title"`
	Description   string `mapstructure:"description"`
	Genre         string `mapstructure:"genre"`
	Duration      int    `mapstructure:"duration"`
	PermalinkURL  string `mapstructure:"permalink_url"`
	StreamURL     string `mapstructure:"stream_url"`
	ArtworkURL    string `mapstructure:"artwork_url"`
	PlaybackCount int    `mapstructure:"playback_count"`
	Streamable    bool   `mapstructure:"streamable"`
	Downloadable  bool   `mapstructure:"downloadable"`
	User          User   `mapstructure:"user"`
}

// Playlist represents a SoundCloud playlist (set).
type Playlist struct {
	ID           int64   `mapstructure:"id"`
	Title        string  `mapstructure:"title"`
	Description  string  `mapstructure:"description"`
	PermalinkURL string  `mapstructure:"permalink_url"`
	TrackCount   int     `mapstructure:"track_count"`
	Tracks       []Track `mapstructure:"tracks"`
	User         User    `mapstructure:"user"`
}

// decodeResource maps a generic decoded response into a typed struct.
// Unknown fields are ignored; no schema validation is performed.
func decodeResource(v Value, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to build resource decoder")
	}
	if err := dec.Decode(v); err != nil {
		return newDecodeError(err)
	}
	return nil
}

// Me retrieves the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	res, err := c.Get(ctx, "me", nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeResource(res, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByID retrieves a user by ID.
func (c *Client) UserByID(ctx context.Context, id int64) (*User, error) {
	res, err := c.Get(ctx, fmt.Sprintf("users/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeResource(res, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// TrackByID retrieves a track by ID.
func (c *Client) TrackByID(ctx context.Context, id int64) (*Track, error) {
	res, err := c.Get(ctx, fmt.Sprintf("tracks/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var track Track
	if err := decodeResource(res, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// PlaylistByID retrieves a playlist by ID.
func (c *Client) PlaylistByID(ctx context.Context, id int64) (*Playlist, error) {
	res, err := c.Get(ctx, fmt.Sprintf("playlists/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var playlist Playlist
	if err := decodeResource(res, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Resolve looks up the API resource behind a public permalink URL.
// The resolve endpoint answers with a redirect to the resource, so the
// call follows redirects and returns the resource representation.
func (c *Client) Resolve(ctx context.Context, permalink string) (Value, error) {
	query := url.Values{}
	query.Set("url", permalink)
	return c.Get(ctx, "resolve", query, WithFollowRedirects(true))
}
