//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 gdata 在 Android 上使用的应用数据目录可写
// gdata 使用 /data/data/{package}/ 作为存储根目录，但不会检查它是否可写；
// 在 gdata.Open 之前调用，失败时主题只保存在内存中。
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("failed to detect Android package name")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("storage directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

// GetStoragePath 返回 /data/data/{package}；包名取 /proc/self/cmdline 的第一个参数
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	pkg := string(bytes.TrimSpace(data))
	if pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
