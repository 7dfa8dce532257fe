package device

import "testing"

func TestClassify_LowEndMobile(t *testing.T) {
	tests := []struct {
		name       string
		sig        Signals
		wantMobile bool
		wantLowEnd bool
	}{
		{
			name:       "移动设备_内存不足触发低端",
			sig:        Signals{ForceMobile: true, MemoryGB: 2, Cores: 8, ViewportWidth: 1024},
			wantMobile: true,
			wantLowEnd: true,
		},
		{
			name:       "非移动设备_内存不足也不是低端移动",
			sig:        Signals{ForceMobile: false, MemoryGB: 2, Cores: 8, ViewportWidth: 1024},
			wantMobile: false,
			wantLowEnd: false,
		},
		{
			name:       "移动设备_核心数少",
			sig:        Signals{Touch: true, MemoryGB: 8, Cores: 4, ViewportWidth: 1024},
			wantMobile: true,
			wantLowEnd: true,
		},
		{
			name:       "窄视口_同时触发移动与低端",
			sig:        Signals{MemoryGB: 8, Cores: 8, ViewportWidth: 400},
			wantMobile: true,
			wantLowEnd: true,
		},
		{
			name:       "高端平板",
			sig:        Signals{UserAgent: "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", MemoryGB: 8, Cores: 8, ViewportWidth: 1024},
			wantMobile: true,
			wantLowEnd: false,
		},
		{
			name:       "移动设备_信号缺失使用默认核心数4",
			sig:        Signals{CoarsePointer: true, MemoryGB: 8, ViewportWidth: 1024},
			wantMobile: true,
			wantLowEnd: true,
		},
		{
			name:       "桌面",
			sig:        Signals{UserAgent: "Mozilla/5.0 (X11; Linux x86_64)", MemoryGB: 16, Cores: 12, ViewportWidth: 1920},
			wantMobile: false,
			wantLowEnd: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := Classify(tt.sig)
			if caps.Mobile != tt.wantMobile {
				t.Errorf("Mobile = %v, want %v", caps.Mobile, tt.wantMobile)
			}
			if caps.LowEndMobile != tt.wantLowEnd {
				t.Errorf("LowEndMobile = %v, want %v", caps.LowEndMobile, tt.wantLowEnd)
			}
		})
	}
}

func TestClassify_Defaults(t *testing.T) {
	caps := Classify(Signals{})
	if caps.MemoryGB != DefaultMemoryGB {
		t.Errorf("MemoryGB = %v, want %v", caps.MemoryGB, DefaultMemoryGB)
	}
	if caps.Cores != DefaultCores {
		t.Errorf("Cores = %v, want %v", caps.Cores, DefaultCores)
	}
	if caps.Mobile {
		t.Error("unknown viewport width must not imply mobile")
	}
}

func TestIsMobileUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"", false},
		{"Mozilla/5.0 (Windows NT 10.0; Win64)", false},
		{"Mozilla/5.0 (Linux; Android 14; Pixel)", true},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17)", true},
		{"Opera Mini/9.80", true},
	}
	for _, tt := range tests {
		if got := IsMobileUserAgent(tt.ua); got != tt.want {
			t.Errorf("IsMobileUserAgent(%q) = %v, want %v", tt.ua, got, tt.want)
		}
	}
}
