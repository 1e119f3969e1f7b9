package csrf

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// CookieName is the cookie the server stores the anti-forgery token in.
const CookieName = "csrftoken"

// CookieReader reads cookie storage. It never writes: only the server sets cookies.
type CookieReader interface {
	Cookie(name string) (string, bool)
}

// JarCookies reads the cookies a jar would send to one URL.
type JarCookies struct {
	jar http.CookieJar
	url *url.URL
}

func NewJarCookies(jar http.CookieJar, baseURL string) (*JarCookies, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	return &JarCookies{jar: jar, url: u}, nil
}

// Cookie returns the URL-decoded value of the named cookie.
func (j *JarCookies) Cookie(name string) (string, bool) {
	for _, c := range j.jar.Cookies(j.url) {
		if c.Name != name || c.Value == "" {
			continue
		}
		if v, err := url.PathUnescape(c.Value); err == nil {
			return v, true
		}
		return c.Value, true
	}
	return "", false
}

// MapCookies is in-memory cookie storage.
type MapCookies struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMapCookies() *MapCookies {
	return &MapCookies{values: map[string]string{}}
}

func (m *MapCookies) Set(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
}

func (m *MapCookies) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, name)
}

func (m *MapCookies) Cookie(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	return v, ok && v != ""
}
