// Package main 无窗口运行三个背景图层的模拟，输出统计报告（YAML）
//
// 用于在没有显示设备的环境下检查帧率门控、粒子重生和流星生成是否符合预期。
//
// Usage:
//
//	go run cmd/starfield-bench/main.go [flags]
//
// Flags:
//
//	--config <path>     背景配置文件（默认使用内置默认值）
//	--tier <name>       desktop | mobile | low-end-mobile
//	--duration <d>      运行时长（默认 5s）
//	--width <n>         视口宽度（默认 1280）
//	--height <n>        视口高度（默认 720）
//	--seed <n>          随机种子（默认 1）
//	--verbose           输出详细日志
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/game"
	"github.com/decker502/starfield/pkg/systems"
	"gopkg.in/yaml.v3"
)

var (
	configFlag   = flag.String("config", "", "Background config file (default: built-in defaults)")
	tierFlag     = flag.String("tier", "desktop", "Quality tier: desktop | mobile | low-end-mobile")
	durationFlag = flag.Duration("duration", 5*time.Second, "How long to run the simulation")
	widthFlag    = flag.Int("width", 1280, "Viewport width")
	heightFlag   = flag.Int("height", 720, "Viewport height")
	seedFlag     = flag.Int64("seed", 1, "Random seed")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// Report 一次运行的统计
type Report struct {
	Tier     string `yaml:"tier"`
	Duration string `yaml:"duration"`
	Viewport string `yaml:"viewport"`

	Config *config.BackgroundConfig `yaml:"config"`

	Nebula struct {
		Particles     int                 `yaml:"particles"`
		Clouds        int                 `yaml:"clouds"`
		StaticStars   int                 `yaml:"staticStars"`
		ShootingStars int                 `yaml:"shootingStars"`
		EffectiveFPS  float64             `yaml:"effectiveFps"`
		Stats         systems.NebulaStats `yaml:"stats"`
	} `yaml:"nebula"`

	Stars struct {
		Count int `yaml:"count"`
		Steps int `yaml:"steps"`
		Halos int `yaml:"halos"`
	} `yaml:"stars"`

	Connections struct {
		Nodes    int     `yaml:"nodes"`
		Steps    int     `yaml:"steps"`
		AvgEdges float64 `yaml:"avgEdges"`
	} `yaml:"connections"`
}

func profileByName(name string) (config.QualityProfile, error) {
	for _, p := range []config.QualityProfile{config.DesktopProfile, config.MobileProfile, config.LowEndMobileProfile} {
		if p.Tier == name {
			return p, nil
		}
	}
	return config.QualityProfile{}, fmt.Errorf("unknown tier %q", name)
}

func loadConfig(path string) (*config.BackgroundConfig, error) {
	if path == "" {
		return config.DefaultBackgroundConfig(), nil
	}
	return config.LoadBackgroundConfig(path)
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	profile, err := profileByName(*tierFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	report := run(cfg, profile, *durationFlag, *widthFlag, *heightFlag, *seedFlag)

	out, err := yaml.Marshal(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode report: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

// run 每个状态由自己的定时器 goroutine 推进；Stop 返回后再读取统计
func run(cfg *config.BackgroundConfig, profile config.QualityProfile, d time.Duration, width, height int, seed int64) *Report {
	rng := rand.New(rand.NewSource(seed))
	theme := cfg.Theme
	if !theme.Valid() {
		theme = config.ThemeDark
	}
	palette := systems.NewPalette(cfg.AnimationColor, theme)

	nebula := systems.NewNebulaState(systems.NebulaOptions{
		BaseHue:         palette.BaseHue,
		Intensity:       cfg.Intensity,
		ParticleCount:   cfg.ParticleCount,
		SpeedMultiplier: cfg.SpeedMultiplier,
		Profile:         profile,
	}, rand.New(rand.NewSource(rng.Int63())))
	stars := systems.NewStarsState(cfg.Intensity, cfg.Speed, rand.New(rand.NewSource(rng.Int63())))
	conns := systems.NewConnectionsState(cfg.Intensity, cfg.Speed, rand.New(rand.NewSource(rng.Int63())))

	w, h := float64(width), float64(height)
	nebula.Resize(w, h)
	stars.Resize(w, h)
	conns.Resize(w, h)

	var (
		starSteps, connSteps, edgeTotal int
		edges                           []systems.Edge
	)
	sources := []*game.TimerTickSource{
		game.NewTimerTickSource(time.Second / 60),
		game.NewTimerTickSource(time.Second / 60),
		game.NewTimerTickSource(time.Second / 60),
	}
	sources[0].Start(func(now time.Duration) { nebula.Step(now) })
	sources[1].Start(func(time.Duration) {
		stars.Step()
		starSteps++
	})
	sources[2].Start(func(time.Duration) {
		conns.Step()
		edges = conns.Edges(edges[:0])
		edgeTotal += len(edges)
		connSteps++
	})

	time.Sleep(d)

	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src *game.TimerTickSource) {
			defer wg.Done()
			src.Stop()
		}(src)
	}
	wg.Wait()

	r := &Report{
		Tier:     profile.Tier,
		Duration: d.String(),
		Viewport: fmt.Sprintf("%dx%d", width, height),
		Config:   cfg,
	}
	r.Nebula.Particles = len(nebula.Particles)
	r.Nebula.Clouds = len(nebula.Clouds)
	r.Nebula.StaticStars = len(nebula.StaticStars)
	r.Nebula.ShootingStars = nebula.ShootingStars.EntityCount()
	r.Nebula.Stats = nebula.Stats
	if d > 0 {
		r.Nebula.EffectiveFPS = float64(nebula.Stats.DrawnFrames) / d.Seconds()
	}

	r.Stars.Count = len(stars.Stars)
	r.Stars.Steps = starSteps
	for i := range stars.Stars {
		if systems.HasHalo(&stars.Stars[i]) {
			r.Stars.Halos++
		}
	}

	r.Connections.Nodes = len(conns.Nodes)
	r.Connections.Steps = connSteps
	if connSteps > 0 {
		r.Connections.AvgEdges = float64(edgeTotal) / float64(connSteps)
	}
	return r
}
