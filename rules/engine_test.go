package rules

import (
	"testing"

	"github.com/gophergun/scorch/physics"
)

func TestReactDefaultScript(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	cases := []struct {
		name string
		pair physics.TagPair
		want Action
	}{
		{"bullet_enemy", physics.TagPair{First: physics.TagBullet, Second: physics.TagEnemy}, ActionDestroyBoth},
		{"bullet_barrel", physics.TagPair{First: physics.TagBullet, Second: physics.TagBarrel}, ActionDestroyBoth},
		{"bullet_ground", physics.TagPair{First: physics.TagBullet, Second: physics.TagGround}, ActionDestroySelf},
		{"player_barrel", physics.TagPair{First: physics.TagPlayer, Second: physics.TagBarrel}, ActionBoom},
		{"player_ground", physics.TagPair{First: physics.TagPlayer, Second: physics.TagGround}, ActionNone},
		{"player_enemy", physics.TagPair{First: physics.TagPlayer, Second: physics.TagEnemy}, ActionNone},
		{"enemy_bullet_not_mirrored", physics.TagPair{First: physics.TagEnemy, Second: physics.TagBullet}, ActionNone},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := engine.React(c.pair)
			if err != nil {
				t.Fatalf("react: %v", err)
			}
			if got != c.want {
				t.Fatalf("react(%s, %s) = %q, want %q", c.pair.First, c.pair.Second, got, c.want)
			}
		})
	}
}

func TestReactRebindsBetweenDispatches(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	boom := physics.TagPair{First: physics.TagPlayer, Second: physics.TagBarrel}
	inert := physics.TagPair{First: physics.TagPlayer, Second: physics.TagGround}

	for i := 0; i < 3; i++ {
		if got, _ := engine.React(boom); got != ActionBoom {
			t.Fatalf("round %d: boom pair gave %q", i, got)
		}
		if got, _ := engine.React(inert); got != ActionNone {
			t.Fatalf("round %d: inert pair gave %q", i, got)
		}
	}
}

func TestNewEngineFromSource(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{
			name: "custom_rule",
			src:  `react := func(a, b) { return a == "Enemy" ? "destroy_self" : "none" }`,
		},
		{
			name:    "syntax_error",
			src:     `react := func(a, b { }`,
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			engine, err := NewEngineFromSource([]byte(c.src))
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected compile error")
				}
				return
			}
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			got, err := engine.React(physics.TagPair{First: physics.TagEnemy, Second: physics.TagGround})
			if err != nil {
				t.Fatalf("react: %v", err)
			}
			if got != ActionDestroySelf {
				t.Fatalf("custom rule gave %q", got)
			}
		})
	}
}
