//go:build mobile

package utils

// IsMobile 移动端构建（ebitenmobile 绑定）始终视为移动设备
func IsMobile() bool {
	return true
}
