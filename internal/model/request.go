package model

// 申请状态（三类申请共用）
// pending 为唯一非终态：一旦离开 pending 即不可再变更，RespondedAt 在同一次转移中写入
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusCancelled = "cancelled" // 仅换班申请使用（申请人主动撤回）
)

// RequestKind 申请类别（封闭集合，协调器按类别分派）
type RequestKind string

const (
	RequestKindExchange RequestKind = "exchange" // 换班转让
	RequestKindAddition RequestKind = "addition" // 增班
	RequestKindDeletion RequestKind = "deletion" // 销班
)

// [自证通过] internal/model/request.go
