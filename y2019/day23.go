package y2019

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nf/intcode/intcode"
)

func init() { register(23, day23) }

const (
	networkSize = 50
	natAddr     = 255
)

func day23(ctx context.Context, prog []int64) (Answer, error) {
	boot := func() []proc {
		nics := make([]proc, networkSize)
		for i := range nics {
			nics[i] = intcode.New(prog)
		}
		return nics
	}
	p1, err := network(ctx, boot(), false)
	if err != nil {
		return Answer{}, err
	}
	p2, err := network(ctx, boot(), true)
	if err != nil {
		return Answer{}, err
	}
	return Answer{strconv.FormatInt(p1, 10), strconv.FormatInt(p2, 10)}, nil
}

// network boots each NIC with its address and runs them round robin,
// routing (address, X, Y) packets between them. A NIC that asks for input
// when no packet is waiting is given -1.
//
// Without a NAT it returns the Y value of the first packet sent to address
// 255. With a NAT, packets to 255 are held by the NAT, which sends the
// last one to address 0 whenever the network is idle; it returns the first
// Y value the NAT delivers twice in a row.
func network(ctx context.Context, nics []proc, nat bool) (int64, error) {
	var (
		queues = make([][]int64, len(nics))
		outs   = make([][]int64, len(nics))

		natX, natY int64
		natFull    bool
		lastY      int64
		sent       bool
	)
	for i, n := range nics {
		n.Send(int64(i))
	}
	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		idle := true
		for i, n := range nics {
			if round > 0 {
				if len(queues[i]) > 0 {
					n.Send(queues[i]...)
					queues[i] = nil
					idle = false
				} else {
					n.Send(-1)
				}
			}
			for blocked := false; !blocked; {
				ev, err := n.Resume()
				if err != nil {
					return 0, fmt.Errorf("nic %d: %w", i, err)
				}
				switch ev.Kind {
				case intcode.HaltEvent:
					return 0, fmt.Errorf("nic %d halted", i)
				case intcode.InputEvent:
					blocked = true
					continue
				}
				idle = false
				outs[i] = append(outs[i], ev.Value)
				if len(outs[i]) < 3 {
					continue
				}
				dst, x, y := outs[i][0], outs[i][1], outs[i][2]
				outs[i] = outs[i][:0]
				switch {
				case dst == natAddr && !nat:
					return y, nil
				case dst == natAddr:
					natX, natY, natFull = x, y, true
				case dst < 0 || dst >= int64(len(nics)):
					return 0, fmt.Errorf("nic %d sent to bad address %d", i, dst)
				default:
					queues[dst] = append(queues[dst], x, y)
				}
			}
		}
		if !nat || !idle || !natFull || !empty(queues) {
			continue
		}
		if sent && natY == lastY {
			return natY, nil
		}
		lastY, sent = natY, true
		queues[0] = append(queues[0], natX, natY)
	}
}

func empty(queues [][]int64) bool {
	for _, q := range queues {
		if len(q) > 0 {
			return false
		}
	}
	return true
}
