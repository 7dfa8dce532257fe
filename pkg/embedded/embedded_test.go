package embedded

import (
	"testing"
	"testing/fstest"
)

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false for nil FS")
	}

	Init(fstest.MapFS{})
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	Init(nil)

	_, err := ReadFile("data/background.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFileAndExists(t *testing.T) {
	Init(fstest.MapFS{
		"data/background.yaml": {Data: []byte("intensity: 0.5\n")},
	})
	defer Init(nil)

	tests := []struct {
		name   string
		path   string
		exists bool
	}{
		{"普通路径", "data/background.yaml", true},
		{"./ 前缀", "./data/background.yaml", true},
		{"不存在", "data/missing.yaml", false},
		{"非法前缀", "assets/background.yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Exists(tt.path); got != tt.exists {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.exists)
			}
		})
	}

	data, err := ReadFile("data/background.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "intensity: 0.5\n" {
		t.Errorf("ReadFile() = %q", data)
	}
}
