package domain

type LoopState string

const (
	StateAwaitingLogin LoopState = "awaiting_login"
	StatePolling       LoopState = "polling"
)
