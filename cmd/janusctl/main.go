package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// CLI admin contra la API HTTP de janus. El token bearer sale del env o del
// flag; el comando login lo imprime para exportarlo.

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte, headers map[string]string) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		baseURL = envOr("JANUS_URL", "http://localhost:8080")
		token   = envOr("JANUS_TOKEN", "")
		out     = envOr("JANUS_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "janusctl",
		Short: "CLI admin para janus (login, usuarios y roles)",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del servicio (env JANUS_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "access token bearer (env JANUS_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "formato de salida: text|json (env JANUS_OUT)")

	cl := func() *client {
		return &client{BaseURL: baseURL, Token: token, OutFormat: out, HTTP: &http.Client{Timeout: timeout}}
	}

	// ---- login ----
	var loginUser, loginPass string
	login := &cobra.Command{
		Use:   "login",
		Short: "POST /login y muestra los tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := url.Values{}
			form.Set("username", loginUser)
			form.Set("password", loginPass)
			c := cl()
			status, body, err := c.do(http.MethodPost, "/login",
				[]byte(form.Encode()),
				map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	login.Flags().StringVar(&loginUser, "username", "", "email de login")
	login.Flags().StringVar(&loginPass, "password", "", "password")
	_ = login.MarkFlagRequired("username")
	_ = login.MarkFlagRequired("password")

	// ---- refresh ----
	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "GET /user/token/refresh con el token del flag --token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cl()
			status, body, err := c.do(http.MethodGet, "/user/token/refresh", nil, nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}

	// ---- users ----
	users := &cobra.Command{Use: "users", Short: "gestión de usuarios"}

	usersList := &cobra.Command{
		Use:   "list",
		Short: "GET /user/getAllUser",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cl()
			status, body, err := c.do(http.MethodGet, "/user/getAllUser", nil, nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}

	var getEmail string
	usersGet := &cobra.Command{
		Use:   "get",
		Short: "GET /user/getUserByEmail",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cl()
			status, body, err := c.do(http.MethodGet, "/user/getUserByEmail?email="+url.QueryEscape(getEmail), nil, nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	usersGet.Flags().StringVar(&getEmail, "email", "", "email del usuario")
	_ = usersGet.MarkFlagRequired("email")

	var newName, newEmail, newPass string
	usersCreate := &cobra.Command{
		Use:   "create",
		Short: "POST /user/createUser",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, _ := json.Marshal(map[string]string{
				"name": newName, "email": newEmail, "password": newPass,
			})
			c := cl()
			status, body, err := c.do(http.MethodPost, "/user/createUser", payload, nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	usersCreate.Flags().StringVar(&newName, "name", "", "nombre")
	usersCreate.Flags().StringVar(&newEmail, "email", "", "email")
	usersCreate.Flags().StringVar(&newPass, "password", "", "password inicial")
	_ = usersCreate.MarkFlagRequired("email")
	_ = usersCreate.MarkFlagRequired("password")

	users.AddCommand(usersList, usersGet, usersCreate)

	// ---- roles ----
	roles := &cobra.Command{Use: "roles", Short: "gestión de roles"}

	var roleName string
	rolesCreate := &cobra.Command{
		Use:   "create",
		Short: "POST /user/role/createRole",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, _ := json.Marshal(map[string]string{"name": roleName})
			c := cl()
			status, body, err := c.do(http.MethodPost, "/user/role/createRole", payload, nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	rolesCreate.Flags().StringVar(&roleName, "name", "", "nombre del rol")
	_ = rolesCreate.MarkFlagRequired("name")

	var addEmail, addRole string
	rolesAdd := &cobra.Command{
		Use:   "add",
		Short: "POST /user/role/addRoleToUser",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, _ := json.Marshal(map[string]string{
				"email": addEmail, "roleName": addRole,
			})
			c := cl()
			status, body, err := c.do(http.MethodPost, "/user/role/addRoleToUser", payload, nil)
			if err != nil {
				return err
			}
			c.print(status, body)
			return nil
		},
	}
	rolesAdd.Flags().StringVar(&addEmail, "email", "", "email del usuario")
	rolesAdd.Flags().StringVar(&addRole, "role", "", "nombre del rol")
	_ = rolesAdd.MarkFlagRequired("email")
	_ = rolesAdd.MarkFlagRequired("role")

	roles.AddCommand(rolesCreate, rolesAdd)

	root.AddCommand(login, refresh, users, roles)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
