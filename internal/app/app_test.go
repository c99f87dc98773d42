package app

import (
	"strings"
	"testing"
)

func TestComponent(t *testing.T) {
	tests := []struct {
		pkg, activity, want string
	}{
		{"com.example", "", "com.example"},
		{"com.example", ".MainActivity", "com.example/.MainActivity"},
		{"com.example", "MainActivity", "com.example/MainActivity"},
		{"com.example", "com.example/.Other", "com.example/.Other"},
	}
	for _, tt := range tests {
		if got := Component(tt.pkg, tt.activity); got != tt.want {
			t.Errorf("Component(%q, %q) = %q, want %q", tt.pkg, tt.activity, got, tt.want)
		}
	}
}

func TestBuildStartArgs(t *testing.T) {
	args := BuildStartArgs(StartOptions{
		Package:  "com.example",
		Activity: ".MainActivity",
		Action:   "android.intent.action.VIEW",
		Data:     "https://example.com",
		Extras:   []string{"key=value", "malformed"},
	})
	got := strings.Join(args, " ")
	want := "am start -W -a android.intent.action.VIEW -d https://example.com --es key value -n com.example/.MainActivity"
	if got != want {
		t.Errorf("BuildStartArgs = %q, want %q", got, want)
	}
}

const dumpsysPackage = `Packages:
  Package [com.example.app] (a1b2c3):
    userId=10123
    versionCode=42 minSdk=26 targetSdk=34
    versionName=1.2.3
    requested permissions:
      android.permission.INTERNET
    install permissions:
      android.permission.INTERNET: granted=true
      android.permission.CAMERA: granted=false
    runtime permissions:
      android.permission.ACCESS_FINE_LOCATION: granted=true
  Activity Resolver Table:
      filter 7f8a: android.intent.action.MAIN android.intent.category.LAUNCHER cmp=com.example.app/.MainActivity
`

func TestParseInfo(t *testing.T) {
	info := ParseInfo("com.example.app", dumpsysPackage)

	if info.VersionName != "1.2.3" {
		t.Errorf("VersionName = %q", info.VersionName)
	}
	if info.VersionCode != "42" {
		t.Errorf("VersionCode = %q", info.VersionCode)
	}
	if info.UID != "10123" {
		t.Errorf("UID = %q", info.UID)
	}
	if len(info.Granted) != 2 {
		t.Errorf("Granted = %v", info.Granted)
	}
	if info.MainActivity != "com.example.app/.MainActivity" {
		t.Errorf("MainActivity = %q", info.MainActivity)
	}
}

func TestParseInfoLauncherLine(t *testing.T) {
	// MAIN and LAUNCHER on the same line, as some dumps print it
	dump := `android.intent.action.MAIN LAUNCHER cmp=com.x/.Main`
	info := ParseInfo("com.x", dump)
	if info.MainActivity != "com.x/.Main" {
		t.Errorf("MainActivity = %q", info.MainActivity)
	}
}

func TestCleanPath(t *testing.T) {
	if got := CleanPath("package:/data/app/com.example/base.apk\n"); got != "/data/app/com.example/base.apk" {
		t.Errorf("CleanPath = %q", got)
	}
}
