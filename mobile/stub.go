//go:build !mobile

// Package mobile 的桌面端占位：ebitenmobile 绑定只在 -tags mobile 时编译，
// 这里保留同名导出，让 go build ./... 在桌面端也能通过。
package mobile

// Dummy 桌面端无操作
func Dummy() {}
