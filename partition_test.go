package channels

import (
	"context"
	"testing"
	"time"
)

func TestPartitionTime_FlushesOnGroupSize(t *testing.T) {
	src := NewChannel[int](4)
	ctx := context.Background()
	out := PartitionTime(ctx, src, 2, time.Second, 4)

	_ = src.Send(ctx, 1)
	_ = src.Send(ctx, 2)

	batch, ok, err := out.Receive(ctx)
	if err != nil || !ok {
		t.Fatalf("Receive = (%v, %v, %v)", batch, ok, err)
	}
	if len(batch) != 2 || batch[0] != 1 || batch[1] != 2 {
		t.Fatalf("batch = %v, want [1 2]", batch)
	}
}

func TestPartitionTime_FlushesOnIdleTimeout(t *testing.T) {
	src := NewChannel[int](4)
	ctx := context.Background()
	out := PartitionTime(ctx, src, 10, 20*time.Millisecond, 4)

	_ = src.Send(ctx, 1)

	batch, ok, err := out.Receive(ctx)
	if err != nil || !ok {
		t.Fatalf("Receive = (%v, %v, %v)", batch, ok, err)
	}
	if len(batch) != 1 || batch[0] != 1 {
		t.Fatalf("batch = %v, want [1]", batch)
	}
}

func TestPartitionTime_FinalFlushOnSourceClose(t *testing.T) {
	src := NewChannel[int](4)
	ctx := context.Background()
	out := PartitionTime(ctx, src, 10, time.Second, 4)

	_ = src.Send(ctx, 1)
	src.Close()

	batch, ok, err := out.Receive(ctx)
	if err != nil || !ok || len(batch) != 1 {
		t.Fatalf("final flush batch = (%v, %v, %v), want ([1], true, nil)", batch, ok, err)
	}

	_, ok, err = out.Receive(ctx)
	if err != nil || ok {
		t.Fatalf("Receive after final flush = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestPartitionTime_ZeroGroupSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("PartitionTime with groupSize 0 should panic")
		}
	}()
	PartitionTime(context.Background(), NewChannel[int](1), 0, time.Second, 1)
}
