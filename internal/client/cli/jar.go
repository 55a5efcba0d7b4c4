package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrijs2005/diplomadesk/internal/client/store"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

const cookieKeyPrefix = "cookies:"

type savedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitzero"`
}

// persistentJar is a cookie jar whose contents survive restarts, so a
// remembered session can still be refreshed. Cookies are kept per host in the
// durable store.
type persistentJar struct {
	*cookiejar.Jar
	store store.Store
	log   logging.Logger
	now   func() time.Time

	mu      sync.Mutex
	expires map[string]time.Time // host + "|" + name; absent for session cookies
}

func newPersistentJar(s store.Store, log logging.Logger) (*persistentJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &persistentJar{Jar: jar, store: s, log: log, now: time.Now, expires: map[string]time.Time{}}, nil
}

func expiryKey(host, name string) string {
	return host + "|" + name
}

func (j *persistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.Jar.SetCookies(u, cookies)

	j.mu.Lock()
	now := j.now()
	for _, c := range cookies {
		key := expiryKey(u.Host, c.Name)
		switch {
		case c.MaxAge > 0:
			j.expires[key] = now.Add(time.Duration(c.MaxAge) * time.Second)
		case c.MaxAge == 0 && !c.Expires.IsZero():
			j.expires[key] = c.Expires
		default:
			delete(j.expires, key)
		}
	}

	saved := make([]savedCookie, 0, len(cookies))
	for _, c := range j.Jar.Cookies(&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}) {
		saved = append(saved, savedCookie{Name: c.Name, Value: c.Value, Expires: j.expires[expiryKey(u.Host, c.Name)]})
	}
	j.mu.Unlock()

	ctx := context.Background()
	var err error
	if len(saved) == 0 {
		err = j.store.Delete(ctx, cookieKeyPrefix+u.Host)
	} else {
		var data []byte
		if data, err = json.Marshal(saved); err == nil {
			err = j.store.Set(ctx, cookieKeyPrefix+u.Host, data)
		}
	}
	if err != nil {
		j.log.Warn(ctx, "failed to persist cookies", "host", u.Host, "error", err)
	}
}

// restore loads the cookies saved for rawURL's host. Cookies past their
// expiry are dropped.
func (j *persistentJar) restore(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}

	data, err := j.store.Get(context.Background(), cookieKeyPrefix+u.Host)
	if err != nil || data == nil {
		return err
	}

	var saved []savedCookie
	if err := json.Unmarshal(data, &saved); err != nil {
		return err
	}

	j.mu.Lock()
	now := j.now()
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		if !c.Expires.IsZero() {
			if !c.Expires.After(now) {
				continue
			}
			j.expires[expiryKey(u.Host, c.Name)] = c.Expires
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/", Expires: c.Expires})
	}
	j.mu.Unlock()

	j.Jar.SetCookies(&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}, cookies)
	return nil
}
