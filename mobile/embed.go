//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把默认配置复制到此目录：
//
//	mkdir -p mobile/data && cp data/background.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/background.yaml
var dataFS embed.FS
