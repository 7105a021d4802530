package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("248"))

	menuStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type requestRow struct {
	RequestID  string  `json:"request_id"`
	StudentID  string  `json:"student_id"`
	Query      string  `json:"query"`
	Category   string  `json:"category"`
	Technician *string `json:"technician"`
	Status     string  `json:"status"`
}

type technicianRow struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	StartTime   int    `json:"start_time"`
	EndTime     int    `json:"end_time"`
	CurrentLoad int    `json:"current_load"`
	Status      string `json:"status"`
}

type client struct {
	base  string
	token string
	http  *http.Client
}

func (c *client) login(name, password string) error {
	body, _ := json.Marshal(map[string]string{"name": name, "password": password})
	resp, err := c.http.Post(c.base+"/auth/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed: %s", resp.Status)
	}
	var payload struct {
		Data struct {
			Auth struct {
				Token string `json:"token"`
			} `json:"auth"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return err
	}
	c.token = payload.Data.Auth.Token
	return nil
}

func (c *client) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) requests(status string) ([]requestRow, error) {
	path := "/admin/requests"
	if status != "" {
		path += "?status=" + status
	}
	var payload struct {
		Data []requestRow `json:"data"`
	}
	if err := c.getJSON(path, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (c *client) technicians() ([]technicianRow, error) {
	var payload struct {
		Data []technicianRow `json:"data"`
	}
	if err := c.getJSON("/admin/technicians", &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func main() {
	base := flag.String("addr", "http://127.0.0.1:8080", "helpdesk API base URL")
	name := flag.String("admin", "admin", "admin name")
	flag.Parse()

	password := os.Getenv("HELPDESK_ADMIN_PASSWORD")
	if password == "" {
		fmt.Println(errorStyle.Render("HELPDESK_ADMIN_PASSWORD must be set"))
		os.Exit(1)
	}

	api := &client{base: strings.TrimRight(*base, "/"), http: &http.Client{Timeout: 10 * time.Second}}
	if err := api.login(*name, password); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println()
		fmt.Println(titleStyle.Render("ADMIN DASHBOARD"))
		fmt.Println(menuStyle.Render("1. View all requests"))
		fmt.Println(menuStyle.Render("2. View pending requests"))
		fmt.Println(menuStyle.Render("3. View completed requests"))
		fmt.Println(menuStyle.Render("4. View technicians"))
		fmt.Println(menuStyle.Render("5. Exit"))
		fmt.Print("\nEnter choice: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		switch strings.TrimSpace(line) {
		case "1":
			showRequests(api, "")
		case "2":
			showRequests(api, "pending")
		case "3":
			showRequests(api, "completed")
		case "4":
			showTechnicians(api)
		case "5":
			fmt.Println("Exiting dashboard...")
			return
		default:
			fmt.Println(errorStyle.Render("Invalid choice"))
		}
	}
}

func showRequests(api *client, status string) {
	rows, err := api.requests(status)
	if err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}
	title := "ALL REQUESTS"
	if status != "" {
		title = strings.ToUpper(status) + " REQUESTS"
	}
	fmt.Println()
	fmt.Println(titleStyle.Render(title))
	if len(rows) == 0 {
		fmt.Println(cellStyle.Render("(none)"))
		return
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-38s %-10s %-12s %-12s %-14s %s",
		"REQUEST", "STUDENT", "CATEGORY", "TECHNICIAN", "STATUS", "QUERY")))
	for _, r := range rows {
		technician := "-"
		if r.Technician != nil {
			technician = *r.Technician
		}
		fmt.Println(cellStyle.Render(fmt.Sprintf("%-38s %-10s %-12s %-12s %-14s %s",
			r.RequestID, r.StudentID, r.Category, technician, r.Status, r.Query)))
	}
}

func showTechnicians(api *client) {
	rows, err := api.technicians()
	if err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}
	fmt.Println()
	fmt.Println(titleStyle.Render("TECHNICIAN LIST"))
	if len(rows) == 0 {
		fmt.Println(cellStyle.Render("(none)"))
		return
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-12s %-12s %-6s %-6s %-6s %s",
		"NAME", "ROLE", "START", "END", "LOAD", "STATUS")))
	for _, t := range rows {
		fmt.Println(cellStyle.Render(fmt.Sprintf("%-12s %-12s %-6d %-6d %-6d %s",
			t.Name, t.Role, t.StartTime, t.EndTime, t.CurrentLoad, t.Status)))
	}
}
