package playback

import (
	"sync"
	"time"

	"github.com/zmb3/spotify/v2"
)

// profileTTL bounds how long a fetched profile is reused.
const profileTTL = 10 * time.Minute

// profileCache remembers the last profile fetched so repeated Me calls
// from the window do not each cost an API request.
type profileCache struct {
	mu        sync.Mutex
	user      *spotify.PrivateUser
	fetchedAt time.Time
	now       func() time.Time
}

func (c *profileCache) get() *spotify.PrivateUser {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil || c.now().Sub(c.fetchedAt) > profileTTL {
		c.user = nil
		return nil
	}
	return c.user
}

func (c *profileCache) set(user *spotify.PrivateUser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
	c.fetchedAt = c.now()
}

func (c *profileCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
}
