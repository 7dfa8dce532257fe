package device

import (
	"log"
	"runtime"

	"github.com/decker502/starfield/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// DetectSignals 探测宿主环境的能力信号
//
// 参数：
//   - viewportWidth: 当前视口宽度（像素），0 表示尚未布局
//   - userAgent: 可选的 UA 字符串（桌面端通常为空，可通过命令行模拟）
func DetectSignals(viewportWidth int, userAgent string) Signals {
	mobile := utils.IsMobile()
	sig := Signals{
		UserAgent:     userAgent,
		Touch:         mobile || len(ebiten.AppendTouchIDs(nil)) > 0,
		CoarsePointer: mobile,
		MemoryGB:      totalMemoryGB(),
		Cores:         runtime.NumCPU(),
		ViewportWidth: viewportWidth,
		ForceMobile:   mobile,
	}
	log.Printf("[Device] Signals: mobile=%v touch=%v memory=%.1fGB cores=%d width=%d",
		sig.ForceMobile, sig.Touch, sig.MemoryGB, sig.Cores, sig.ViewportWidth)
	return sig
}

// Detect 探测并分级，挂载时调用一次
// forceMobile 为 true 时无论探测结果如何都按移动设备分级（命令行模拟）
func Detect(viewportWidth int, userAgent string, forceMobile bool) Capabilities {
	sig := DetectSignals(viewportWidth, userAgent)
	if forceMobile {
		sig.ForceMobile = true
	}
	caps := Classify(sig)
	log.Printf("[Device] Capabilities: mobile=%v lowEnd=%v", caps.Mobile, caps.LowEndMobile)
	return caps
}
