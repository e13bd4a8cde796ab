package imghost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yockii/wx_publisher/pkg/logger"
)

const uploadConcurrency = 4

var imageRefPattern = regexp.MustCompile(`!\[[^\]]*\]\(\s*<?([^)\s>]+)>?`)

// LocalImages 返回 Markdown 中引用的本地图片路径，按首次出现排序并去重
func LocalImages(md string) []string {
	seen := make(map[string]bool)
	refs := make([]string, 0)
	for _, m := range imageRefPattern.FindAllStringSubmatch(md, -1) {
		ref := m[1]
		if isRemote(ref) || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "//")
}

// RewriteLocalImages 并发上传 baseDir 下的本地图片并把引用替换为图床地址，远程地址保持不变
func RewriteLocalImages(ctx context.Context, md, baseDir string, uploader Uploader) (string, error) {
	refs := LocalImages(md)
	if len(refs) == 0 {
		return md, nil
	}

	root, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	var mu sync.Mutex
	uploaded := make(map[string]string, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			path, err := resolve(root, ref)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("读取图片 %s 失败: %w", ref, err)
			}
			result, err := uploader.Upload(gctx, data)
			if err != nil {
				return fmt.Errorf("上传图片 %s 失败: %w", ref, err)
			}
			logger.Info("图片已上传", logger.F("path", ref), logger.F("url", result.URL))
			mu.Lock()
			uploaded[ref] = result.URL
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var b strings.Builder
	last := 0
	for _, loc := range imageRefPattern.FindAllStringSubmatchIndex(md, -1) {
		ref := md[loc[2]:loc[3]]
		u, ok := uploaded[ref]
		if !ok {
			continue
		}
		b.WriteString(md[last:loc[2]])
		b.WriteString(u)
		last = loc[3]
	}
	b.WriteString(md[last:])
	out := b.String()
	return out, nil
}

func resolve(root, ref string) (string, error) {
	path := filepath.Join(root, filepath.FromSlash(ref))
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("图片路径 %s 超出目录范围", ref)
	}
	return path, nil
}
