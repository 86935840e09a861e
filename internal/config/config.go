// Package config는 use 설정 파일(config.toml)을 읽는다. 검색 경로와
// 버전 offset 같은 값은 env 변수 같은 암묵적 상태 대신 명시적 설정
// 구조체로 엔진에 전달된다.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 파일 오류")

// Config는 use 설정 파일의 최상위 구조체다.
type Config struct {
	Version           int         `toml:"version"`
	AutoVersionPaths  []string    `toml:"auto_version_paths"`
	BakedVersionPaths []string    `toml:"baked_version_paths"`
	RecursiveSearch   *bool       `toml:"recursive_search"`
	AutoVersionOffset int         `toml:"auto_version_offset"`
	Permissions       Permissions `toml:"permissions"`
}

// Permissions는 권한 정책 설정이다.
type Permissions struct {
	EnforceUsePkg          bool  `toml:"enforce_use_pkg"`
	EnforceScripts         bool  `toml:"enforce_scripts"`
	AllowArbitraryCommands *bool `toml:"allow_arbitrary_commands"`
	DisplayViolations      *bool `toml:"display_violations"`
	TrustedUID             int   `toml:"trusted_uid"`
}

// Default는 설정 파일이 없을 때 사용하는 기본 설정이다.
func Default() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// Load는 config.toml을 파싱하여 Config를 반환한다. 파일이 없으면 기본
// 설정을 반환한다.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsRecursiveSearch는 recursive_search 설정값을 반환한다.
func (c *Config) IsRecursiveSearch() bool {
	if c.RecursiveSearch == nil {
		return true
	}
	return *c.RecursiveSearch
}

// IsAllowArbitraryCommands는 allow_arbitrary_commands 설정값을 반환한다.
func (c *Config) IsAllowArbitraryCommands() bool {
	if c.Permissions.AllowArbitraryCommands == nil {
		return true
	}
	return *c.Permissions.AllowArbitraryCommands
}

// IsDisplayViolations는 display_violations 설정값을 반환한다.
func (c *Config) IsDisplayViolations() bool {
	if c.Permissions.DisplayViolations == nil {
		return true
	}
	return *c.Permissions.DisplayViolations
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if len(c.AutoVersionPaths) == 0 {
		c.AutoVersionPaths = []string{"/opt/apps"}
	}
	if len(c.BakedVersionPaths) == 0 {
		c.BakedVersionPaths = []string{"/opt/use"}
	}
	if c.AutoVersionOffset == 0 {
		c.AutoVersionOffset = 2
	}
}

func (c *Config) validate() error {
	if c.AutoVersionOffset < 1 {
		return fmt.Errorf("config.Load: %w: auto_version_offset은 1 이상이어야 합니다 (현재 %d)",
			ErrConfig, c.AutoVersionOffset)
	}

	// auto와 baked 검색 경로는 겹치면 안 된다.
	auto := make(map[string]bool, len(c.AutoVersionPaths))
	for _, p := range c.AutoVersionPaths {
		auto[filepath.Clean(p)] = true
	}
	for _, p := range c.BakedVersionPaths {
		if auto[filepath.Clean(p)] {
			return fmt.Errorf("config.Load: %w: 검색 경로 %s가 auto와 baked에 모두 있습니다",
				ErrConfig, filepath.Clean(p))
		}
	}
	return nil
}
