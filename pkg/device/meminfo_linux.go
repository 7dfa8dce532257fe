//go:build linux

package device

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// totalMemoryGB 从 /proc/meminfo 读取物理内存总量
// 读取失败返回 0（未知）
func totalMemoryGB() float64 {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer f.Close()
	return parseMemTotal(bufio.NewScanner(f))
}

// parseMemTotal 解析 "MemTotal:  16318480 kB" 行
func parseMemTotal(sc *bufio.Scanner) float64 {
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return kb / (1024 * 1024)
	}
	return 0
}
