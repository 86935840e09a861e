package cli

import (
	"github.com/hbjs97/use/internal/config"
	"github.com/hbjs97/use/internal/descriptor"
	"github.com/hbjs97/use/internal/engine"
	"github.com/hbjs97/use/internal/expand"
	"github.com/hbjs97/use/internal/permissions"
)

// 하위 패키지의 센티널 에러 재노출. 호출자는 cli 패키지만 import하면 된다.
var (
	// ErrPackageNotFound는 요청한 use 패키지가 인덱스나 히스토리에 없을 때.
	ErrPackageNotFound = engine.ErrPackageNotFound
	// ErrMalformed는 use 파일 구문이 잘못되었을 때.
	ErrMalformed = descriptor.ErrMalformed
	// ErrUndefinedVariable은 버전 없는 패키지가 버전 토큰을 참조할 때.
	ErrUndefinedVariable = expand.ErrUndefinedVariable
	// ErrDenied는 권한 정책 위반일 때.
	ErrDenied = permissions.ErrDenied
	// ErrConfig는 설정 파일이 잘못되었을 때.
	ErrConfig = config.ErrConfig
)
