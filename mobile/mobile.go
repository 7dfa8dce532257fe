//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.starfield -o build/android/starfield.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Starfield.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/starfield/pkg/app"
	"github.com/decker502/starfield/pkg/embedded"
)

func init() {
	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	// 移动端使用嵌入的默认配置；设备分级由 utils.IsMobile() 自动判定
	bgApp, err := app.NewApp(app.Config{
		Verbose: true, // Enable verbose logging for debugging
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(bgApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
