package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// urlshorty-cli drives the HTTP API from the command line. Tokens from a
// successful login are persisted to auth.txt in the working directory and
// reused for authenticated commands.

const authFile = "auth.txt"

type client struct {
	baseURL string
	http    *http.Client
}

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	c := &client{baseURL: strings.TrimRight(baseURL, "/"), http: http.DefaultClient}

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "register":
		err = c.register(os.Args[2:])
	case "login":
		err = c.login(os.Args[2:])
	case "logout":
		err = c.logout()
	case "refresh":
		_, err = c.refresh()
	case "me":
		err = c.me()
	case "list":
		err = c.authGet("/url/list/")
	case "shorten":
		err = c.shorten(os.Args[2:])
	case "get":
		err = c.get(os.Args[2:])
	case "update":
		err = c.update(os.Args[2:])
	case "delete":
		err = c.delete(os.Args[2:])
	case "delete-account":
		err = c.deleteAccount(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: urlshorty-cli <command> [flags]

commands:
  register -u <username> -p <password>
  login    -u <username> -p <password>
  logout
  refresh
  me
  list
  shorten  -code <short_code> -url <original_url>
  get      -code <short_code>
  update   -code <short_code> -url <new_url>
  delete   -code <short_code>
  delete-account -u <username> -p <password>`)
}

func credentialFlags(name string, args []string) (username, password string, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&username, "u", "", "username")
	fs.StringVar(&password, "p", "", "password")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	if username == "" || password == "" {
		return "", "", fmt.Errorf("%s: -u and -p are required", name)
	}
	return username, password, nil
}

func (c *client) register(args []string) error {
	username, password, err := credentialFlags("register", args)
	if err != nil {
		return err
	}
	return c.do("POST", "/usr/register", map[string]string{
		"username": username,
		"password": password,
	}, "", nil)
}

func (c *client) login(args []string) error {
	if _, err := os.Stat(authFile); err == nil {
		return fmt.Errorf("already logged in; run logout first")
	}

	username, password, err := credentialFlags("login", args)
	if err != nil {
		return err
	}

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.do("POST", "/usr/login", map[string]string{
		"username": username,
		"password": password,
	}, "", &tokens); err != nil {
		return err
	}

	return saveTokens(tokens.AccessToken, tokens.RefreshToken)
}

func (c *client) logout() error {
	_, refreshToken, err := loadTokens()
	if err != nil {
		return err
	}

	if err := c.do("POST", "/usr/logout", map[string]string{
		"refresh_token": refreshToken,
	}, "", nil); err != nil {
		return err
	}

	return os.Remove(authFile)
}

// refresh exchanges the stored refresh token for a new access token and
// rewrites auth.txt in place.
func (c *client) refresh() (string, error) {
	_, refreshToken, err := loadTokens()
	if err != nil {
		return "", err
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do("POST", "/usr/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, "", &resp); err != nil {
		return "", err
	}

	if err := saveTokens(resp.AccessToken, refreshToken); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *client) me() error {
	return c.authGet("/usr/me")
}

func (c *client) shorten(args []string) error {
	fs := flag.NewFlagSet("shorten", flag.ContinueOnError)
	code := fs.String("code", "", "short code")
	url := fs.String("url", "", "original URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" || *url == "" {
		return fmt.Errorf("shorten: -code and -url are required")
	}

	return c.authDo("POST", "/url/shorten/", map[string]string{
		"original_url": *url,
		"short_code":   *code,
	})
}

func (c *client) get(args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	code := fs.String("code", "", "short code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" {
		return fmt.Errorf("get: -code is required")
	}
	return c.authGet("/url/" + *code)
}

func (c *client) update(args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	code := fs.String("code", "", "short code")
	url := fs.String("url", "", "new URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" || *url == "" {
		return fmt.Errorf("update: -code and -url are required")
	}

	return c.authDo("PATCH", "/url/", map[string]string{
		"short_code":  *code,
		"updated_url": *url,
	})
}

func (c *client) delete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	code := fs.String("code", "", "short code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" {
		return fmt.Errorf("delete: -code is required")
	}

	return c.authDo("DELETE", "/url/", map[string]string{
		"short_code": *code,
	})
}

func (c *client) deleteAccount(args []string) error {
	username, password, err := credentialFlags("delete-account", args)
	if err != nil {
		return err
	}

	if err := c.do("DELETE", "/usr/delete", map[string]string{
		"username": username,
		"password": password,
	}, "", nil); err != nil {
		return err
	}

	// Stored tokens are useless once the account is gone
	os.Remove(authFile)
	return nil
}

// authGet / authDo run a request with the stored access token, retrying once
// through a refresh when the token has gone stale.
func (c *client) authGet(path string) error {
	return c.authDo("GET", path, nil)
}

func (c *client) authDo(method, path string, body any) error {
	accessToken, _, err := loadTokens()
	if err != nil {
		return err
	}

	err = c.do(method, path, body, accessToken, nil)
	if err != nil && strings.Contains(err.Error(), "401") {
		if accessToken, err = c.refresh(); err != nil {
			return err
		}
		return c.do(method, path, body, accessToken, nil)
	}
	return err
}

// do sends one request and pretty-prints the JSON response. When out is
// non-nil the body is also decoded into it.
func (c *client) do(method, path string, body any, accessToken string, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") == nil {
		fmt.Printf("Status: %d\n%s\n", resp.StatusCode, pretty.String())
	} else {
		fmt.Printf("Status: %d\n%s\n", resp.StatusCode, raw)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

func saveTokens(accessToken, refreshToken string) error {
	content := fmt.Sprintf("access_token=%s\nrefresh_token=%s\n", accessToken, refreshToken)
	return os.WriteFile(authFile, []byte(content), 0o600)
}

func loadTokens() (accessToken, refreshToken string, err error) {
	data, err := os.ReadFile(authFile)
	if err != nil {
		return "", "", fmt.Errorf("not logged in; run login first")
	}

	for _, line := range strings.Split(string(data), "\n") {
		if value, ok := strings.CutPrefix(line, "access_token="); ok {
			accessToken = strings.TrimSpace(value)
		}
		if value, ok := strings.CutPrefix(line, "refresh_token="); ok {
			refreshToken = strings.TrimSpace(value)
		}
	}

	if accessToken == "" || refreshToken == "" {
		return "", "", fmt.Errorf("not logged in; run login first")
	}
	return accessToken, refreshToken, nil
}
