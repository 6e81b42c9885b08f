// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import "fmt"

// OptionalUint32 distinguishes a stored zero from a missing value. The zero value is absent.
type OptionalUint32 struct {
	value   uint32
	present bool
}

func SomeUint32(value uint32) OptionalUint32 {
	return OptionalUint32{value: value, present: true}
}

func NoneUint32() OptionalUint32 {
	return OptionalUint32{}
}

func (o OptionalUint32) Get() (uint32, bool) {
	return o.value, o.present
}

func (o OptionalUint32) IsPresent() bool {
	return o.present
}

func (o OptionalUint32) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%d)", o.value)
}
