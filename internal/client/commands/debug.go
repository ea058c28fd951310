package commands

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"gomoku/internal/client/display"
)

func (r *Registry) registerDebugCommands() {
	for _, cmd := range []*Command{
		{Name: "health", ShortName: ".", Description: "Check server health", Usage: "health", Handler: healthHandler},
		{Name: "url", ShortName: "/", Description: "Set API base URL", Usage: "url [apiUrl]", Handler: urlHandler},
		{Name: "raw", ShortName: ":", Description: "Send raw API request", Usage: "raw <method> <path> [json-body]", Handler: rawRequestHandler},
		{Name: "clear", ShortName: "-", Description: "Clear screen", Usage: "clear", Handler: clearHandler},
	} {
		cmd.Group = groupUtility
		r.Register(cmd)
	}
}

func healthHandler(s Session, args []string) error {
	resp, err := s.GetClient().Health()
	if err != nil {
		return err
	}

	out := s.Out()
	fmt.Fprintf(out, "%sServer Health:%s\n", display.Cyan, display.Reset)
	fmt.Fprintf(out, "  Status:  %s\n", resp.Status)
	fmt.Fprintf(out, "  Time:    %s\n", time.Unix(resp.Time, 0).Format("2006-01-02 15:04:05"))
	if resp.Storage != "" {
		fmt.Fprintf(out, "  Storage: %s\n", resp.Storage)
	}
	fmt.Fprintf(out, "  Games:   %d\n", resp.Games)
	return nil
}

func urlHandler(s Session, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.Out(), "Current API URL: %s\n", s.GetAPIBaseURL())
		return nil
	}

	url := args[0]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}

	s.SetAPIBaseURL(url)
	s.GetClient().SetBaseURL(url)

	fmt.Fprintf(s.Out(), "%sAPI URL set to: %s%s\n", display.Cyan, url, display.Reset)
	return nil
}

func rawRequestHandler(s Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: raw <method> <path> [json-body]")
	}

	method := strings.ToUpper(args[0])
	path := args[1]

	body := ""
	if len(args) > 2 {
		body = strings.Join(args[2:], " ")
	}

	return s.GetClient().RawRequest(method, path, body)
}

func clearHandler(s Session, args []string) error {
	cmd := exec.Command("clear")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}
