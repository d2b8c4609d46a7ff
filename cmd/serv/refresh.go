package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/AntonioEsper/MarketLens/internal/engine"
	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/spf13/cobra"
)

const envToken = "MARKETLENS_TOKEN"

func newRefreshCmd() *cobra.Command {
	var server, token string
	cmd := &cobra.Command{
		Use:       "refresh <job>",
		Short:     "手动触发数据任务并输出进度",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{engine.JobCot, engine.JobSeasonality, engine.JobEconomic},
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv(envToken)
			}
			run, err := refresh(cmd.Context(), http.DefaultClient, server, token, args[0], cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if run.Status != models.RunStatusSucceeded {
				return fmt.Errorf("job %s %s: %s", run.Job, run.Status, run.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://127.0.0.1:8080", "服务地址")
	cmd.Flags().StringVar(&token, "token", "", "访问令牌，默认读取 "+envToken)
	return cmd
}

// refresh 调用 /api/engine/:job/run 并逐行打印进度事件，返回最终执行记录
func refresh(ctx context.Context, client *http.Client, server, token, job string, out io.Writer) (*models.RefreshRun, error) {
	endpoint := strings.TrimRight(server, "/") + "/api/engine/" + url.PathEscape(job) + "/run?trigger=" + engine.TriggerCLI
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("refresh %s: %s %s", job, resp.Status, body.Message)
	}

	var (
		event string
		run   *models.RefreshRun
	)
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := []byte(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			switch event {
			case "progress":
				var p engine.Progress
				if err := json.Unmarshal(data, &p); err != nil {
					return nil, err
				}
				printProgress(out, p)
			case "result":
				run = new(models.RefreshRun)
				if err := json.Unmarshal(data, run); err != nil {
					return nil, err
				}
			case "error":
				var body struct {
					Message string `json:"message"`
				}
				_ = json.Unmarshal(data, &body)
				return nil, fmt.Errorf("refresh %s: %s", job, body.Message)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("refresh %s: stream closed without result", job)
	}
	return run, nil
}

func printProgress(out io.Writer, p engine.Progress) {
	if p.Total > 0 {
		_, _ = fmt.Fprintf(out, "[%s] %-5s %d/%d %s\n", p.Job, p.Level, p.Step, p.Total, p.Message)
		return
	}
	_, _ = fmt.Fprintf(out, "[%s] %-5s %s\n", p.Job, p.Level, p.Message)
}
