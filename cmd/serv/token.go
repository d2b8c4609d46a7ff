package main

import (
	"fmt"
	"os"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		secret string
		issuer string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "签发本地调试用的访问令牌",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv(config.EnvJWTSecret)
			}
			if secret == "" {
				return fmt.Errorf("jwt secret required: set --secret or %s", config.EnvJWTSecret)
			}
			conf := &config.Config{Auth: config.AuthConf{JWTSecret: secret, Issuer: issuer}}
			token, err := service.NewAuthService(conf, zap.NewNop()).IssueToken(userID, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "用户ID")
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC 密钥，默认读取 "+config.EnvJWTSecret)
	cmd.Flags().StringVar(&issuer, "issuer", "", "签发者")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "有效期")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
