package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yockii/wx_publisher/internal/imghost"
	"github.com/yockii/wx_publisher/pkg/mdmeta"
	"github.com/yockii/wx_publisher/pkg/theme"
	"github.com/yockii/wx_publisher/pkg/wxstyle"
)

const defaultImgBBURL = "https://api.imgbb.com/1"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wxrender",
		Short:         "离线将 Markdown 渲染为公众号 HTML",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(newRenderCmd(), newMetaCmd(), newThemesCmd())
	return rootCmd
}

// readSource 读取文件，"-" 表示标准输入
func readSource(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("读取文件失败: %w", err)
	}
	return string(data), nil
}

func newRenderCmd() *cobra.Command {
	var (
		themeID      string
		themeJSON    string
		output       string
		uploadImages bool
		imgbbKey     string
		imgbbURL     string
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "渲染 Markdown 文件",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			th := theme.Resolve(themeID)
			if themeJSON != "" {
				raw, err := os.ReadFile(themeJSON)
				if err != nil {
					return fmt.Errorf("读取主题文件失败: %w", err)
				}
				th = theme.FromJSON(string(raw))
			}

			if uploadImages {
				baseDir := "."
				if args[0] != "-" {
					baseDir = filepath.Dir(args[0])
				}
				client := imghost.NewClient(imghost.Options{BaseURL: imgbbURL}, imgbbKey)
				if src, err = imghost.RewriteLocalImages(context.Background(), src, baseDir, client); err != nil {
					return err
				}
			}

			html, err := wxstyle.RenderMarkdown(src, th)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
				return err
			}
			return os.WriteFile(output, []byte(html), 0644)
		},
	}
	cmd.Flags().StringVar(&themeID, "theme", theme.DefaultID, "内置主题 ID")
	cmd.Flags().StringVar(&themeJSON, "theme-json", "", "自定义主题 JSON 文件")
	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件，默认输出到标准输出")
	cmd.Flags().BoolVar(&uploadImages, "upload-images", false, "上传本地图片到 ImgBB 并替换地址")
	cmd.Flags().StringVar(&imgbbKey, "imgbb-key", os.Getenv("IMGBB_API_KEY"), "ImgBB API Key")
	cmd.Flags().StringVar(&imgbbURL, "imgbb-url", defaultImgBBURL, "ImgBB 接口地址")
	cmd.MarkFlagsMutuallyExclusive("theme", "theme-json")
	return cmd
}

func newMetaCmd() *cobra.Command {
	var maxLen int
	cmd := &cobra.Command{
		Use:   "meta FILE",
		Short: "提取标题、摘要和图片",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			meta := mdmeta.Extract(src, maxLen)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Title   string   `json:"title"`
				Summary string   `json:"summary"`
				Images  []string `json:"images"`
			}{meta.Title, meta.Summary, meta.Images})
		},
	}
	cmd.Flags().IntVar(&maxLen, "max", mdmeta.DefaultSummaryLength, "摘要最大字符数")
	return cmd
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "列出内置主题",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, th := range theme.List() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s  %s\n", th.ID, th.Name, th.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
