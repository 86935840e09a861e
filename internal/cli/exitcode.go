package cli

import "errors"

// ExitCode는 프로세스 종료 코드다.
type ExitCode int

const (
	// ExitOK는 정상 종료.
	ExitOK ExitCode = 0
	// ExitGeneral은 분류되지 않은 오류.
	ExitGeneral ExitCode = 1
	// ExitNotFound는 패키지를 찾지 못함.
	ExitNotFound ExitCode = 2
	// ExitMalformed는 use 파일 구문 오류.
	ExitMalformed ExitCode = 3
	// ExitUndefinedVariable은 정의되지 않은 변수 참조.
	ExitUndefinedVariable ExitCode = 4
	// ExitDenied는 권한 정책 위반.
	ExitDenied ExitCode = 5
	// ExitConfig는 설정 오류.
	ExitConfig ExitCode = 6
)

// MapExitCode는 에러를 종료 코드로 변환한다.
func MapExitCode(err error) ExitCode {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrPackageNotFound):
		return ExitNotFound
	case errors.Is(err, ErrMalformed):
		return ExitMalformed
	case errors.Is(err, ErrUndefinedVariable):
		return ExitUndefinedVariable
	case errors.Is(err, ErrDenied):
		return ExitDenied
	case errors.Is(err, ErrConfig):
		return ExitConfig
	default:
		return ExitGeneral
	}
}
