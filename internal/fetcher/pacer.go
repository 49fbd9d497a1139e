package fetcher

import "time"

// Pacer выдерживает фиксированную паузу после каждого обработанного сайта.
// Пауза не прерывается контекстом.
type Pacer struct {
	delay time.Duration
	sleep func(time.Duration)
}

func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{
		delay: delay,
		sleep: time.Sleep,
	}
}

// WithSleep подменяет функцию сна (для тестов)
func (p *Pacer) WithSleep(sleep func(time.Duration)) *Pacer {
	p.sleep = sleep
	return p
}

func (p *Pacer) Pause() {
	if p.delay <= 0 {
		return
	}
	p.sleep(p.delay)
}

func (p *Pacer) Delay() time.Duration {
	return p.delay
}
