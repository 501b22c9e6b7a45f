package services

import (
	"context"
	"math/rand"
	"time"
)

// Pacer 回复前的"思考"延迟，只用于界面节奏，不做任何计算
type Pacer struct {
	Min time.Duration
	Max time.Duration

	randN func(n int64) int64
	after func(d time.Duration) <-chan time.Time
}

// NewPacer 创建在 [lo, hi] 内随机延迟的 Pacer
func NewPacer(lo, hi time.Duration) *Pacer {
	return &Pacer{
		Min:   lo,
		Max:   hi,
		randN: rand.Int63n,
		after: time.After,
	}
}

// Instant 不延迟的 Pacer，用于测试和命令行
func Instant() *Pacer {
	return NewPacer(0, 0)
}

// Delay 计算本次延迟
func (p *Pacer) Delay() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + time.Duration(p.randN(int64(p.Max-p.Min)+1))
}

// Wait 等待延迟结束；ctx 取消时立即返回 ctx.Err()
func (p *Pacer) Wait(ctx context.Context) error {
	d := p.Delay()
	if d <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.after(d):
		return nil
	}
}
