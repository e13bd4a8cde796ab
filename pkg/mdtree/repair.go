package mdtree

import (
	"regexp"
	"strings"
)

var separatorRow = regexp.MustCompile(`^\|?\s*:?-+:?\s*(\|\s*:?-+:?\s*)*\|?$`)

// RepairTables 修复被空行打断的管道表格：删除表格行之间的空行，
// 并在表格后紧跟普通文本时补一个空行。代码块内的内容保持不变。
func RepairTables(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))

	var fenceChar byte
	fenceLen := 0
	inTable := false
	header := ""

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if fenceLen > 0 {
			if ch, n := fenceMarker(trimmed); ch == fenceChar && n >= fenceLen && strings.TrimSpace(strings.TrimLeft(trimmed, string(ch))) == "" {
				fenceLen = 0
			}
			out = append(out, line)
			continue
		}
		if ch, n := fenceMarker(trimmed); n > 0 {
			fenceChar, fenceLen = ch, n
			inTable = false
			out = append(out, line)
			continue
		}

		if inTable {
			switch {
			case isPipeRow(trimmed):
				out = append(out, line)
				continue
			case trimmed == "":
				if next := nextNonBlank(lines, i+1); next >= 0 && continuesTable(strings.TrimSpace(lines[next]), header) {
					i = next - 1
					continue
				}
				inTable = false
			default:
				inTable = false
				out = append(out, "")
			}
			out = append(out, line)
			continue
		}

		if isPipeRow(trimmed) && !isSeparator(trimmed) {
			if next := nextNonBlank(lines, i+1); next >= 0 && isSeparator(strings.TrimSpace(lines[next])) {
				inTable = true
				header = trimmed
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func fenceMarker(trimmed string) (byte, int) {
	if len(trimmed) < 3 || (trimmed[0] != '`' && trimmed[0] != '~') {
		return 0, 0
	}
	ch := trimmed[0]
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0
	}
	return ch, n
}

func isPipeRow(trimmed string) bool {
	return strings.Contains(trimmed, "|")
}

// continuesTable 空行之后的行是否仍属于表格：
// 表头带外侧竖线时要求同样带竖线，否则要求列数与表头一致
func continuesTable(trimmed, header string) bool {
	if !isPipeRow(trimmed) {
		return false
	}
	if isSeparator(trimmed) {
		return true
	}
	if hasOuterPipe(header) {
		return hasOuterPipe(trimmed)
	}
	return cellCount(trimmed) == cellCount(header)
}

func hasOuterPipe(trimmed string) bool {
	return strings.HasPrefix(trimmed, "|") || strings.HasSuffix(trimmed, "|")
}

func cellCount(trimmed string) int {
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "|"), "|")
	return strings.Count(inner, "|") - strings.Count(inner, `\|`) + 1
}

func isSeparator(trimmed string) bool {
	return strings.Contains(trimmed, "|") && separatorRow.MatchString(trimmed)
}

func nextNonBlank(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			return j
		}
	}
	return -1
}
