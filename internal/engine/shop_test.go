package engine

import (
	"errors"
	"testing"
)

func TestBuyReward(t *testing.T) {
	e, _ := newTestEngine(t)
	out, err := e.AddReward("Movie night", 30)
	if err != nil {
		t.Fatalf("AddReward: %v", err)
	}
	s := e.State()
	s.Gold = 20
	var insufficient InsufficientGoldError
	if _, err := e.BuyReward(out.Ref); !errors.As(err, &insufficient) || insufficient.Need != 30 {
		t.Fatalf("err=%v, want InsufficientGoldError need 30", err)
	}
	s.Gold = 45
	if _, err := e.BuyReward(out.Ref); err != nil {
		t.Fatalf("BuyReward: %v", err)
	}
	if s.Gold != 15 || s.Rewards[0].TimesBought != 1 {
		t.Fatalf("gold=%d bought=%d", s.Gold, s.Rewards[0].TimesBought)
	}
}

func TestRestAtInn(t *testing.T) {
	tests := []struct {
		tier     InnTier
		gold     int
		hp       int
		wantHP   int
		wantGold int
		wantErr  error
	}{
		{InnCampfire, 0, 50, 60, 0, nil},
		{InnTavern, 10, 50, 80, 0, nil},
		{InnInn, 30, 50, 100, 5, nil},
		{InnRoyal, 60, 1, 100, 0, nil},
		{InnRoyal, 59, 1, 1, 59, ErrInsufficientGold},
		{InnCampfire, 0, 100, 100, 0, ErrFullHealth},
	}
	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			e, _ := newTestEngine(t)
			s := e.State()
			s.Gold, s.HP = tt.gold, tt.hp
			_, err := e.RestAtInn(tt.tier)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err=%v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("RestAtInn: %v", err)
			}
			if s.HP != tt.wantHP || s.Gold != tt.wantGold {
				t.Fatalf("hp=%d gold=%d, want %d/%d", s.HP, s.Gold, tt.wantHP, tt.wantGold)
			}
		})
	}
}

func TestLogSleepNeverFaints(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.State()
	s.HP = 4
	s.XP = 60

	out, err := e.LogSleep(SleepTerrible)
	if err != nil {
		t.Fatalf("LogSleep: %v", err)
	}
	if s.HP != 1 || s.XP != 60 || out.Has(EventFainted) {
		t.Fatalf("hp=%d xp=%d events=%v", s.HP, s.XP, out.Events)
	}

	if _, err := e.LogSleep(SleepGreat); err != nil {
		t.Fatalf("LogSleep: %v", err)
	}
	if s.HP != 26 {
		t.Fatalf("hp=%d, want 26", s.HP)
	}
	for i := 0; i < SleepLogLimit+5; i++ {
		_, _ = e.LogSleep(SleepOkay)
	}
	if len(s.SleepLog) != SleepLogLimit {
		t.Fatalf("sleep log=%d, want %d", len(s.SleepLog), SleepLogLimit)
	}
	if _, err := ParseSleepQuality("meh"); err == nil {
		t.Fatalf("expected parse error")
	}
}
