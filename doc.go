/*
Package roster manages teams and players of a tournament.

Roster

A Cup keeps a registry of teams and a registry of players. Teams are held in
three balanced search trees: by id, by (ability, id) for rank queries and
by (score, strength, id) for the current leader. Players are held in a hash
directory by id.

Players of a team form a tree of a union-find forest (package lineage).
Every player carries the number of games played and a partial spirit, a
permutation of five elements. Both are stored relative to the player's
parent in the forest, so that a team purchase merges whole teams in
near-constant time:

	cup.BuyTeam(buyerID, boughtID)  // spirit of every bought player p
	                                // becomes spirit(buyer) ∘ spirit(p)

Games played by a team are counted once for the team and folded into the
players lazily. When a team is removed, its players stay registered: their
game count is frozen, while cards can no longer be added.

Errors

Operations report one of three error values, which may be wrapped with
context and are tested with errors.Is:

	ErrInvalidInput   arguments violate preconditions
	ErrFailure        the operation is not possible in the current state
	ErrAllocation     a capacity limit has been reached

The Cup is not safe for concurrent use.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–23, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package roster

import (
	"errors"

	"github.com/npillmayer/roster/avl"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// StatusError is an error type for the roster module
type StatusError string

func (e StatusError) Error() string {
	return string(e)
}

// ErrInvalidInput is flagged whenever function parameters are invalid.
const ErrInvalidInput = StatusError("INVALID_INPUT")

// ErrFailure is flagged whenever an entity is missing, already present, or
// in a state which does not allow the operation.
const ErrFailure = StatusError("FAILURE")

// ErrAllocation is flagged whenever a capacity limit prevents an insertion.
const ErrAllocation = StatusError("ALLOCATION_ERROR")

// Status returns the StatusError err maps to, or nil for a nil error.
func Status(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, ErrAllocation), errors.Is(err, avl.ErrOutOfMemory):
		return ErrAllocation
	}
	return ErrFailure
}

func invariant(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
