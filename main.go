// Package main 动画背景渲染器（星云 / 星空 / 连线）
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>       磁盘上的背景配置（修改后热重载），留空使用嵌入的默认配置
//	--color <hex>         基础颜色，例如 --color=#ff00aa
//	--intensity <n>       强度，0~1 或 0~100
//	--speed <name>        slow | normal | fast
//	--theme <name>        light | dark
//	--particles <n>       星云粒子基准数量
//	--composition <name>  nebula | starfield | full
//	--mobile              按移动设备分级（测试移动端降级）
//	--ua <string>         模拟的 User-Agent
//	--seed <n>            随机种子（0 表示按时间）
//	--overlay             显示调试信息
//	--verbose             输出详细日志
//
// Controls:
//
//	B         - 切换背景组合
//	T         - 切换明暗主题（会持久化）
//	D         - 显示/隐藏调试信息
//	F11       - 全屏
//	Q/Escape  - 退出
package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/decker502/starfield/pkg/app"
	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

var (
	configFlag      = flag.String("config", "", "Background config file (hot reloaded)")
	colorFlag       = flag.String("color", "", "Base color in hex")
	intensityFlag   = flag.Float64("intensity", config.DefaultIntensity, "Intensity, 0~1 or 0~100")
	speedFlag       = flag.String("speed", string(config.DefaultSpeed), "Animation speed: slow | normal | fast")
	themeFlag       = flag.String("theme", "", "Theme: light | dark (default: saved or system preference)")
	particlesFlag   = flag.Int("particles", config.DefaultParticleCount, "Nebula particle base count")
	compositionFlag = flag.String("composition", string(config.CompositionFull), "Composition: nebula | starfield | full")
	mobileFlag      = flag.Bool("mobile", false, "Classify the device as mobile")
	uaFlag          = flag.String("ua", "", "User agent used for device classification")
	seedFlag        = flag.Int64("seed", 0, "Random seed (0 = time based)")
	overlayFlag     = flag.Bool("overlay", false, "Show debug overlay")
	verboseFlag     = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（必须在加载配置之前）
	embedded.Init(dataFS)

	bg, err := app.NewApp(app.Config{
		Verbose:       *verboseFlag,
		ConfigPath:    *configFlag,
		Override:      overrideFromFlags(),
		UserAgent:     *uaFlag,
		MobileEmulate: *mobileFlag,
		Seed:          *seedFlag,
		Overlay:       *overlayFlag,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}
	defer bg.Close()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Starfield")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(bg); err != nil {
		log.Fatal(err)
	}
}

// overrideFromFlags 只覆盖命令行中显式给出的参数
func overrideFromFlags() func(cfg *config.BackgroundConfig) {
	set := map[string]string{}
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = f.Value.String()
	})
	if len(set) == 0 {
		return nil
	}

	return func(cfg *config.BackgroundConfig) {
		for name, value := range set {
			switch name {
			case "color":
				cfg.AnimationColor = value
			case "intensity":
				if v, err := strconv.ParseFloat(value, 64); err == nil {
					cfg.Intensity = v
				}
			case "speed":
				cfg.Speed = config.Speed(value)
			case "theme":
				cfg.Theme = config.Theme(value)
			case "particles":
				if v, err := strconv.Atoi(value); err == nil {
					cfg.ParticleCount = v
				}
			case "composition":
				cfg.Composition = config.Composition(value)
			}
		}
	}
}
