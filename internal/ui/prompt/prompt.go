// Package prompt renders a prefix that looks like the user's idle shell
// prompt.
package prompt

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/kk-code-lab/shellpage/internal/shellsetup"
	"github.com/kk-code-lab/shellpage/internal/textutil"
	"github.com/mitchellh/go-homedir"
)

const resetColor = "\x1b[00m"

var (
	ps1Pattern      = regexp.MustCompile(`PS1='([^']+)'`)
	ps1ColorPattern = regexp.MustCompile(`\\\[\\033\[([0-9;]+)m\\\]`)
)

// Env is everything the prompt depends on.
type Env struct {
	User     string
	Host     string
	Cwd      string
	Home     string
	EUID     int
	GOOS     string
	Shell    string
	ReadFile func(string) ([]byte, error)
}

// CurrentEnv collects Env from the running process.
func CurrentEnv() Env {
	user := os.Getenv("USER")
	if user == "" {
		user = "root"
	}
	host, _ := os.Hostname()
	cwd, _ := os.Getwd()
	home, _ := homedir.Dir()
	return Env{
		User:     user,
		Host:     host,
		Cwd:      cwd,
		Home:     home,
		EUID:     os.Geteuid(),
		GOOS:     runtime.GOOS,
		Shell:    shellsetup.DetectShell(),
		ReadFile: os.ReadFile,
	}
}

// Formatter holds a rendered prompt and its on-screen width.
type Formatter struct {
	prompt string
	width  int
}

func New(env Env) *Formatter {
	p := Build(env)
	return &Formatter{prompt: p, width: textutil.VisibleWidth(p)}
}

// Prompt returns the prompt string, colour codes included.
func (f *Formatter) Prompt() string {
	return f.prompt
}

// Width returns the number of columns the prompt occupies.
func (f *Formatter) Width() int {
	return f.width
}

// Build renders the prompt for env. On Ubuntu the colours of PS1 in
// ~/.bashrc are reused; otherwise the default prompt of the detected shell is
// imitated.
func Build(env Env) string {
	pwd := abbreviateHome(env.Cwd, env.Home)
	if env.User == "root" && pwd == "/root" {
		pwd = "~"
	}
	promptChar := "$"
	if env.EUID == 0 {
		promptChar = "#"
	}

	if env.GOOS == "linux" && distroID(env) == "ubuntu" {
		if colors := bashrcColors(env); len(colors) >= 2 {
			pathColor := colors[len(colors)-1]
			if len(colors) > 2 {
				pathColor = colors[2]
			}
			return fmt.Sprintf("%s%s@%s%s:%s%s%s%s ",
				colors[0], env.User, env.Host, resetColor, pathColor, pwd, resetColor, promptChar)
		}
	}

	switch env.Shell {
	case "zsh":
		zshChar := "%"
		if env.EUID == 0 {
			zshChar = "#"
		}
		return fmt.Sprintf("%s@%s %s %s ", env.User, env.Host, baseName(pwd), zshChar)
	case "fish":
		fishChar := ">"
		if env.EUID == 0 {
			fishChar = "#"
		}
		return fmt.Sprintf("%s@%s %s%s ", env.User, env.Host, pwd, fishChar)
	default:
		return fmt.Sprintf("[%s@%s %s]%s ", env.User, env.Host, baseName(pwd), promptChar)
	}
}

func abbreviateHome(cwd, home string) string {
	if home == "" || home == "/" {
		return cwd
	}
	home = strings.TrimSuffix(home, "/")
	if cwd == home {
		return "~"
	}
	if strings.HasPrefix(cwd, home+"/") {
		return "~" + cwd[len(home):]
	}
	return cwd
}

func baseName(pwd string) string {
	if pwd == "~" || pwd == "/" || pwd == "" {
		return pwd
	}
	return filepath.Base(pwd)
}

// distroID returns the ID field of /etc/os-release.
func distroID(env Env) string {
	if env.ReadFile == nil {
		return ""
	}
	data, err := env.ReadFile("/etc/os-release")
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "ID=") {
			return strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "ID=")), `"`)
		}
	}
	return ""
}

// bashrcColors extracts the SGR sequences used in the PS1 assignment of
// ~/.bashrc.
func bashrcColors(env Env) []string {
	if env.ReadFile == nil || env.Home == "" {
		return nil
	}
	data, err := env.ReadFile(filepath.Join(env.Home, ".bashrc"))
	if err != nil {
		return nil
	}
	match := ps1Pattern.FindSubmatch(data)
	if match == nil {
		return nil
	}
	var colors []string
	for _, m := range ps1ColorPattern.FindAllSubmatch(match[1], -1) {
		colors = append(colors, "\x1b["+string(m[1])+"m")
	}
	return colors
}
