// Package permissions는 use 패키지 파일과 스크립트에 대한 신뢰 정책을
// 검사한다. 임의의 명령을 eval하는 시스템이므로, 신뢰된 소유자만 쓸 수
// 있는 파일만 허용하는 것이 기본 방침이다. use-cmds/unuse-cmds 항목은
// 정책상 검사 대상이 아니다 (문서화된 약한 신뢰 경계).
package permissions

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"syscall"
)

// ErrDenied는 파일이 신뢰 정책을 위반할 때의 sentinel error다.
var ErrDenied = errors.New("권한 정책 위반")

// LegalPerms는 허용되는 파일 권한 목록이다. 신뢰된 소유자 외에는 쓸 수
// 없는 조합만 포함한다.
var LegalPerms = []os.FileMode{0644, 0744, 0754, 0755, 0654, 0655, 0645}

// Policy는 권한 검사 정책이다. 검사는 파일이 실제로 사용되는 시점에
// lazy하게 수행되므로, 권한이 잘못된 무관한 패키지가 다른 요청을
// 막지 않는다.
type Policy struct {
	// EnforceUsePkg가 true면 use 패키지 파일 자체를 검사한다.
	EnforceUsePkg bool
	// EnforceScripts가 true면 use/unuse 스크립트를 검사한다.
	EnforceScripts bool
	// AllowArbitraryCommands가 false면 use-cmds/unuse-cmds 기능이
	// 비활성화된다.
	AllowArbitraryCommands bool
	// TrustedUID는 신뢰된 소유자다. 운영 환경에서는 보통 root(0)다.
	TrustedUID int
}

// ValidateUsePkg는 use 패키지 파일의 권한을 검사한다.
func (p Policy) ValidateUsePkg(path string) error {
	if !p.EnforceUsePkg {
		return nil
	}
	return p.validate(path)
}

// ValidateScripts는 use/unuse 스크립트들의 권한을 검사한다.
// 존재하지 않는 스크립트는 건너뛴다 (실행 시점에 셸이 에러를 낸다).
func (p Policy) ValidateScripts(paths []string) error {
	if !p.EnforceScripts {
		return nil
	}
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := p.validate(path); err != nil {
			return err
		}
	}
	return nil
}

func (p Policy) validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("permissions.validate: %w", err)
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		if int(st.Uid) != p.TrustedUID {
			return fmt.Errorf("permissions.validate: %w: %s: 소유자가 uid %d가 아닙니다",
				ErrDenied, path, p.TrustedUID)
		}
	}
	perm := info.Mode().Perm()
	if !slices.Contains(LegalPerms, perm) {
		return fmt.Errorf("permissions.validate: %w: %s: 권한 %o은 허용 목록에 없습니다",
			ErrDenied, path, perm)
	}
	return nil
}
