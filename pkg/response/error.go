package response

// 业务错误码，与前端约定保持一致
const (
	CodeParamsError    = 40000
	CodeNotLoginError  = 40100
	CodeNoAuthError    = 40101
	CodeNotFoundError  = 40400
	CodeForbiddenError = 40300
	CodeSystemError    = 50000
	CodeOperationError = 50001
)

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

func ParamsError(msg string) *BizError {
	return NewError(CodeParamsError, msg)
}

func NotLoginError(msg string) *BizError {
	return NewError(CodeNotLoginError, msg)
}

func NoAuthError(msg string) *BizError {
	return NewError(CodeNoAuthError, msg)
}

func NotFoundError(msg string) *BizError {
	return NewError(CodeNotFoundError, msg)
}

func SystemError(msg string) *BizError {
	return NewError(CodeSystemError, msg)
}

func OperationError(msg string) *BizError {
	return NewError(CodeOperationError, msg)
}
