package gcddom

import (
	"context"
	"io/ioutil"
	"net"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
)

const profilePrefix = "elemk"

var baseFlags = []string{
	"--enable-automation",
	"--test-type",
	"--disable-client-side-phishing-detection",
	"--disable-component-update",
	"--disable-infobars",
	"--disable-background-networking",
	"--disable-sync",
	"--disable-default-apps",
	"--disable-popup-blocking",
	"--disable-extensions",
	"--disable-features=TranslateUI",
	"--disable-gpu",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--no-first-run",
	"--window-size=1024,768",
	"--password-store=basic",
}

func startupFlags(headless bool) []string {
	flags := make([]string, 0, len(baseFlags)+2)
	flags = append(flags, baseFlags...)
	if headless {
		flags = append(flags, "--headless")
	}
	return append(flags, "about:blank")
}

// FindChrome returns the default browser path and temp dir for profiles
func FindChrome() (string, string) {
	switch runtime.GOOS {
	case "windows":
		return "C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe", "C:\\Temp\\gcd\\"
	case "darwin":
		return "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", "/tmp/gcd/"
	case "linux":
		for _, p := range []string{"/usr/bin/chromium-browser", "/usr/bin/chromium", "/usr/bin/google-chrome"} {
			if _, err := os.Stat(p); err == nil {
				return p, "/tmp/gcd/"
			}
		}
		return "/usr/bin/chromium-browser", "/tmp/gcd/"
	}
	return "", "tmp"
}

func randPort() string {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		log.Warn().Err(err).Msg("unable to get port using default 9022")
		return "9022"
	}
	_, port, _ := net.SplitHostPort(l.Addr().String())
	l.Close()
	return port
}

func randProfile(tmp string) (string, error) {
	if err := os.MkdirAll(tmp, 0700); err != nil {
		return "", err
	}
	profile, err := ioutil.TempDir(tmp, profilePrefix)
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary profile directory")
	}
	if profile == "" {
		return "", errors.New("profile returned empty")
	}
	return profile, nil
}

// LocalLeaser starts chrome processes on random ports. Each browser gets its
// own profile directory which is removed when the browser is returned.
type LocalLeaser struct {
	browserLock sync.RWMutex
	browsers    map[string]*gcd.Gcd
	profiles    map[string]string
	chromePath  string
	headless    bool
	timeout     time.Duration
	tmp         string
}

// NewLocalLeaser for chromePath, an empty path uses FindChrome
func NewLocalLeaser(chromePath string, headless bool, timeout time.Duration) *LocalLeaser {
	chrome, tmp := FindChrome()
	if chromePath != "" {
		chrome = chromePath
	}
	return &LocalLeaser{
		browsers:   make(map[string]*gcd.Gcd),
		profiles:   make(map[string]string),
		chromePath: chrome,
		headless:   headless,
		timeout:    timeout,
		tmp:        tmp,
	}
}

// Acquire starts a browser and returns its debugger port
func (s *LocalLeaser) Acquire() (string, error) {
	b := gcd.NewChromeDebugger()
	b.DeleteProfileOnExit()

	profileDir, err := randProfile(s.tmp)
	if err != nil {
		return "", err
	}
	port := randPort()

	b.AddFlags(startupFlags(s.headless))
	if err := b.StartProcess(s.chromePath, profileDir, port); err != nil {
		os.RemoveAll(profileDir)
		return "", errors.Wrapf(err, "failed to start %s", s.chromePath)
	}
	s.browserLock.Lock()
	s.browsers[port] = b
	s.profiles[port] = profileDir
	s.browserLock.Unlock()

	return port, nil
}

// Open the first tab of the browser on port
func (s *LocalLeaser) Open(ctx context.Context, port string) (*Document, error) {
	s.browserLock.RLock()
	b, ok := s.browsers[port]
	s.browserLock.RUnlock()
	if !ok {
		return nil, errors.Errorf("no browser on port %s", port)
	}

	target, err := b.GetFirstTab()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get first tab")
	}
	log.Ctx(ctx).Debug().Str("port", port).Msg("opened tab")
	return New(target, s.timeout)
}

// Return stops the browser on port and removes the profile created for it.
// Profiles of other browsers in the shared temp dir are left alone.
func (s *LocalLeaser) Return(port string) error {
	s.browserLock.Lock()
	defer s.browserLock.Unlock()

	b, ok := s.browsers[port]
	if !ok {
		return errors.Errorf("no browser on port %s", port)
	}
	exitErr := b.ExitProcess()
	delete(s.browsers, port)

	if err := s.removeProfile(port); err != nil {
		return err
	}
	return exitErr
}

// removeProfile of the browser on port, callers hold browserLock
func (s *LocalLeaser) removeProfile(port string) error {
	profile, ok := s.profiles[port]
	if !ok {
		return nil
	}
	delete(s.profiles, port)
	if err := os.RemoveAll(profile); err != nil {
		return errors.Wrapf(err, "failed to remove profile %s", profile)
	}
	return nil
}
