// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package calldata

import (
	"context"
	"encoding/binary"

	"github.com/0xsend/sendintents/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

const wordSize = 32

// boundsChecker follows the same path through the encoded arguments as the ABI decoder,
// without building any values. Every offset must land inside the data, every declared
// length must fit in the bytes that follow it, and the number of values is limited to
// the size of the input. The decoder sizes its slices from declared lengths, so this
// must pass before the data is handed to it.
type boundsChecker struct {
	ctx    context.Context
	block  []byte
	budget int
}

func checkBounds(ctx context.Context, inputs abi.TypeComponent, block []byte, offset int) error {
	bc := &boundsChecker{ctx: ctx, block: block, budget: len(block)}
	_, err := bc.tuple(offset, inputs.TupleChildren())
	return err
}

func (bc *boundsChecker) tuple(headStart int, children []abi.TypeComponent) (int, error) {
	headPosition := headStart
	for _, child := range children {
		n, err := bc.element(headStart, headPosition, child)
		if err != nil {
			return -1, err
		}
		headPosition += n
	}
	return headPosition - headStart, nil
}

func (bc *boundsChecker) repeated(headStart int, child abi.TypeComponent, count int) error {
	headPosition := headStart
	for i := 0; i < count; i++ {
		n, err := bc.element(headStart, headPosition, child)
		if err != nil {
			return err
		}
		headPosition += n
	}
	return nil
}

// element returns the number of head bytes the value occupies
func (bc *boundsChecker) element(headStart, headPosition int, tc abi.TypeComponent) (int, error) {
	if !isDynamic(tc) {
		size := bc.staticSize(tc)
		if headPosition+size > len(bc.block) {
			return -1, i18n.NewError(bc.ctx, msgs.MsgCallDataValueOutOfRange, tc.String(), headPosition)
		}
		return size, bc.charge(bc.staticValues(tc))
	}

	offset, err := bc.word(headPosition)
	if err != nil {
		return -1, err
	}
	if err := bc.charge(1); err != nil {
		return -1, err
	}
	dataOffset := headStart + offset
	switch tc.ComponentType() {
	case abi.ElementaryComponent:
		_, err = bc.length(dataOffset, 1, tc)
	case abi.DynamicArrayComponent:
		err = bc.dynamicArray(dataOffset, tc)
	case abi.FixedArrayComponent:
		err = bc.repeated(dataOffset, tc.ArrayChild(), tc.FixedArrayLen())
	default:
		_, err = bc.tuple(dataOffset, tc.TupleChildren())
	}
	return wordSize, err
}

func (bc *boundsChecker) dynamicArray(dataOffset int, tc abi.TypeComponent) error {
	child := tc.ArrayChild()
	childDynamic := isDynamic(child)
	childHeadSize := wordSize
	if !childDynamic {
		childHeadSize = bc.staticSize(child)
	}
	count, err := bc.length(dataOffset, childHeadSize, tc)
	if err != nil {
		return err
	}
	if !childDynamic {
		return bc.charge(capMul(count, bc.staticValues(child), bc.budget+1))
	}
	return bc.repeated(dataOffset+wordSize, child, count)
}

// length reads a count at dataOffset, and checks count*elementSize bytes follow it
func (bc *boundsChecker) length(dataOffset, elementSize int, tc abi.TypeComponent) (int, error) {
	count, err := bc.word(dataOffset)
	if err != nil {
		return -1, err
	}
	remaining := len(bc.block) - dataOffset - wordSize
	if uint64(count)*uint64(elementSize) > uint64(remaining) {
		return -1, i18n.NewError(bc.ctx, msgs.MsgCallDataLengthOutOfRange, count, tc.String(), dataOffset, remaining)
	}
	return count, nil
}

// word reads an offset or length, which the decoder limits to 32 bits
func (bc *boundsChecker) word(position int) (int, error) {
	if position < 0 || position > len(bc.block)-wordSize {
		return -1, i18n.NewError(bc.ctx, msgs.MsgCallDataWordOutOfRange, position)
	}
	w := bc.block[position : position+wordSize]
	for _, b := range w[:wordSize-4] {
		if b != 0 {
			return -1, i18n.NewError(bc.ctx, msgs.MsgCallDataWordTooLarge, position)
		}
	}
	return int(binary.BigEndian.Uint32(w[wordSize-4:])), nil
}

func (bc *boundsChecker) charge(values int) error {
	if values > bc.budget {
		return i18n.NewError(bc.ctx, msgs.MsgCallDataTooManyValues, len(bc.block))
	}
	bc.budget -= values
	return nil
}

// staticSize is capped just beyond the length of the input
func (bc *boundsChecker) staticSize(tc abi.TypeComponent) int {
	limit := len(bc.block) + 1
	switch tc.ComponentType() {
	case abi.FixedArrayComponent:
		return capMul(tc.FixedArrayLen(), bc.staticSize(tc.ArrayChild()), limit)
	case abi.TupleComponent:
		size := 0
		for _, child := range tc.TupleChildren() {
			size = capAdd(size, bc.staticSize(child), limit)
		}
		return size
	default:
		return wordSize
	}
}

// staticValues counts the values the decoder builds for a static type, capped just beyond the budget
func (bc *boundsChecker) staticValues(tc abi.TypeComponent) int {
	limit := bc.budget + 1
	switch tc.ComponentType() {
	case abi.FixedArrayComponent:
		return capAdd(1, capMul(tc.FixedArrayLen(), bc.staticValues(tc.ArrayChild()), limit), limit)
	case abi.TupleComponent:
		values := 1
		for _, child := range tc.TupleChildren() {
			values = capAdd(values, bc.staticValues(child), limit)
		}
		return values
	default:
		return 1
	}
}

func isDynamic(tc abi.TypeComponent) bool {
	switch tc.ComponentType() {
	case abi.ElementaryComponent:
		return !tc.ElementaryFixed()
	case abi.DynamicArrayComponent:
		return true
	case abi.FixedArrayComponent:
		return tc.FixedArrayLen() > 0 && isDynamic(tc.ArrayChild())
	default:
		for _, child := range tc.TupleChildren() {
			if isDynamic(child) {
				return true
			}
		}
		return false
	}
}

func capMul(a, b, limit int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > limit/b {
		return limit
	}
	return min(a*b, limit)
}

func capAdd(a, b, limit int) int {
	return min(a+b, limit)
}
