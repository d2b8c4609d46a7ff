package main

import (
	"log"

	"github.com/AntonioEsper/MarketLens/internal"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "marketlens",
	Short: "MarketLens - 交易日志与市场评分服务",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		return internal.Run(configFile)
	},
}

func init() {
	// 全局配置文件标志
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "配置文件路径")
	rootCmd.AddCommand(newRefreshCmd(), newTokenCmd())
}

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
