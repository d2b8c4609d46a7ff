package xe

import "github.com/go-orz/orz"

var (
	ErrInvalidParams    = orz.NewError(10400, "参数无效")
	ErrInvalidToken     = orz.NewError(10403, "令牌无效")
	ErrPermissionDenied = orz.NewError(10401, "您没有权限查看/修改/删除此数据")
	ErrNotFound         = orz.NewError(10404, "数据不存在")

	ErrMixedCurrency   = orz.NewError(10011, "所选账户的货币必须一致")
	ErrAccountRequired = orz.NewError(10012, "至少选择一个交易账户")
	ErrUnknownJob      = orz.NewError(10013, "未知的数据任务")
	ErrJobRunning      = orz.NewError(10014, "数据任务正在运行")
	ErrInvalidCSV      = orz.NewError(10015, "CSV文件格式不正确")
	ErrInvalidPlanKey  = orz.NewError(10016, "计划编号格式不正确")
	ErrNotSupport      = orz.NewError(10010, "尚未支持")
)
