package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/mergington/activities/internal/domain/types"
)

// populateRegistry builds a registry with the given number of activities,
// each seeded with a handful of participants.
func populateRegistry(ctx context.Context, activities, participants int) *MemoryRegistry {
	catalog := make([]types.Activity, 0, activities)
	for i := 0; i < activities; i++ {
		roster := make([]string, 0, participants)
		for j := 0; j < participants; j++ {
			roster = append(roster, fmt.Sprintf("student-%d-%d@mergington.edu", i, j))
		}
		catalog = append(catalog, types.Activity{
			Name:            fmt.Sprintf("Activity %d", i),
			Description:     "Benchmark activity",
			Schedule:        "Weekdays, 3:30 PM - 5:00 PM",
			MaxParticipants: participants * 2,
			Participants:    roster,
		})
	}
	return NewMemoryRegistry(ctx, WithSeed(catalog))
}

func BenchmarkMemoryRegistry_List(b *testing.B) {
	ctx := context.Background()
	reg := populateRegistry(ctx, 50, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = reg.List(ctx)
	}
}

func BenchmarkMemoryRegistry_Signup(b *testing.B) {
	ctx := context.Background()
	reg := populateRegistry(ctx, 50, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		activity := fmt.Sprintf("Activity %d", i%50)
		email := fmt.Sprintf("bench-%d@mergington.edu", i)
		if err := reg.Signup(ctx, activity, email); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkMemoryRegistry_SignupUnregister(b *testing.B) {
	ctx := context.Background()
	reg := populateRegistry(ctx, 50, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		activity := fmt.Sprintf("Activity %d", i%50)
		email := fmt.Sprintf("bench-%d@mergington.edu", i)
		if err := reg.Signup(ctx, activity, email); err != nil {
			b.Fatalf("signup: %v", err)
		}
		if err := reg.Unregister(ctx, activity, email); err != nil {
			b.Fatalf("unregister: %v", err)
		}
	}
}

func BenchmarkMemoryRegistry_ParticipantTotal(b *testing.B) {
	ctx := context.Background()
	reg := populateRegistry(ctx, 50, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = reg.ParticipantTotal(ctx)
	}
}

// BenchmarkMemoryRegistry_MixedParallel approximates the live traffic mix:
// mostly catalog reads with occasional signups and unregistrations.
func BenchmarkMemoryRegistry_MixedParallel(b *testing.B) {
	ctx := context.Background()
	reg := populateRegistry(ctx, 50, 20)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(rand.Int63()))
		for pb.Next() {
			activity := fmt.Sprintf("Activity %d", r.Intn(50))
			switch n := r.Float64(); {
			case n < 0.80:
				_ = reg.List(ctx)
			case n < 0.90:
				email := fmt.Sprintf("par-%d@mergington.edu", r.Intn(100_000))
				_ = reg.Signup(ctx, activity, email)
			default:
				email := fmt.Sprintf("par-%d@mergington.edu", r.Intn(100_000))
				_ = reg.Unregister(ctx, activity, email)
			}
		}
	})
}
