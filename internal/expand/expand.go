// Package expand는 use 패키지 필드 값 안의 내장 변수 토큰을 치환한다.
package expand

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hbjs97/use/internal/descriptor"
)

// ErrUndefinedVariable는 버전 컨텍스트가 없는 패키지가 버전 토큰을
// 참조할 때 반환된다. 확장은 lazy하므로 파싱 시점이 아니라 사용 시점에
// 발생한다.
var ErrUndefinedVariable = errors.New("정의되지 않은 내장 변수")

// Context는 하나의 use 패키지에 대한 확장 컨텍스트다.
// Version 계열 필드는 auto 버전 패키지에서만 채워진다.
type Context struct {
	PkgDir        string
	Version       string
	VersionDir    string
	PreVersionDir string
}

// AutoContext는 auto 버전 패키지의 확장 컨텍스트를 만든다. 버전은
// use 패키지 파일에서 offset 단계 위의 조상 디렉토리 이름이다.
func AutoContext(pkgFile string, offset int) Context {
	versionDir := VersionPath(pkgFile, offset)
	return Context{
		PkgDir:        filepath.Dir(pkgFile),
		Version:       filepath.Base(versionDir),
		VersionDir:    versionDir,
		PreVersionDir: filepath.Dir(versionDir),
	}
}

// PlainContext는 baked 버전 또는 버전 없는 패키지의 컨텍스트를 만든다.
// 버전 토큰은 정의되지 않은 상태로 남는다.
func PlainContext(pkgFile string) Context {
	return Context{PkgDir: filepath.Dir(pkgFile)}
}

// VersionPath는 pkgFile에서 offset 단계 위의 조상 디렉토리 경로를
// 반환한다. 음수 offset은 절대값으로 취급한다.
func VersionPath(pkgFile string, offset int) string {
	if offset < 0 {
		offset = -offset
	}
	p := pkgFile
	for i := 0; i < offset; i++ {
		p = filepath.Dir(p)
	}
	return p
}

func (c Context) hasVersion() bool {
	return c.Version != ""
}

// Expand는 text 안의 내장 변수 토큰을 치환한다. 긴 토큰부터 매칭하므로
// $VERSION_PATH가 $VERSION + "_PATH"로 잘못 치환되지 않는다. 알 수 없는
// $토큰은 그대로 둔다 (리터럴 $ 사용과의 상위 호환).
func Expand(text string, ctx Context) (string, error) {
	// 반드시 긴 토큰에서 짧은 토큰 순서로 나열할 것.
	tokens := []struct {
		name         string
		value        string
		needsVersion bool
	}{
		{"$PRE_VERSION_PATH", ctx.PreVersionDir, true},
		{"$USE_PKG_PATH", ctx.PkgDir, false},
		{"$VERSION_PATH", ctx.VersionDir, true},
		{"$VERSION", ctx.Version, true},
	}

	for _, t := range tokens {
		if !strings.Contains(text, t.name) {
			continue
		}
		if t.needsVersion && !ctx.hasVersion() {
			return "", fmt.Errorf("expand.Expand: %w: %s", ErrUndefinedVariable, t.name)
		}
		text = strings.ReplaceAll(text, t.name, t.value)
	}
	return text, nil
}

// Apply는 branch를 제외한 descriptor의 모든 필드 값을 확장한 사본을
// 반환한다. 원본은 변경하지 않는다.
func Apply(d *descriptor.Descriptor, ctx Context) (*descriptor.Descriptor, error) {
	out := &descriptor.Descriptor{Branch: d.Branch}
	var err error

	if out.EnvVars, err = expandKeyValues(d.EnvVars, ctx); err != nil {
		return nil, err
	}
	if out.Aliases, err = expandKeyValues(d.Aliases, ctx); err != nil {
		return nil, err
	}
	for _, pm := range d.PathMutations {
		paths, err := expandList(pm.Paths, ctx)
		if err != nil {
			return nil, err
		}
		out.PathMutations = append(out.PathMutations, descriptor.PathMutation{
			Variable: pm.Variable,
			Prepend:  pm.Prepend,
			Paths:    paths,
		})
	}
	if out.UseScripts, err = expandList(d.UseScripts, ctx); err != nil {
		return nil, err
	}
	if out.UnuseScripts, err = expandList(d.UnuseScripts, ctx); err != nil {
		return nil, err
	}
	if out.UseCmds, err = expandList(d.UseCmds, ctx); err != nil {
		return nil, err
	}
	if out.UnuseCmds, err = expandList(d.UnuseCmds, ctx); err != nil {
		return nil, err
	}
	if out.DesktopFile, err = Expand(d.DesktopFile, ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func expandKeyValues(in []descriptor.KeyValue, ctx Context) ([]descriptor.KeyValue, error) {
	var out []descriptor.KeyValue
	for _, kv := range in {
		v, err := Expand(kv.Value, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, descriptor.KeyValue{Key: kv.Key, Value: v})
	}
	return out, nil
}

func expandList(in []string, ctx Context) ([]string, error) {
	var out []string
	for _, item := range in {
		v, err := Expand(item, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
