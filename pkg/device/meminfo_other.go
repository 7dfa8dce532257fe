//go:build !linux

package device

// totalMemoryGB 非 Linux 平台无法可靠获取内存总量，返回 0（未知）
func totalMemoryGB() float64 {
	return 0
}
