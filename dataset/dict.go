// Copyright 2025 savora Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

// FreqDict maps string identifiers to dense indices and tracks how many
// times each identifier has been counted.
type FreqDict struct {
	si  map[string]int32
	is  []string
	cnt []int
}

func NewFreqDict() *FreqDict {
	return &FreqDict{si: map[string]int32{}}
}

func (d *FreqDict) Count() int32 {
	return int32(len(d.is))
}

// Id returns the dense index of s, inserting and counting it if absent.
func (d *FreqDict) Id(s string) (y int32) {
	if y, ok := d.si[s]; ok {
		d.cnt[y]++
		return y
	}
	y = int32(len(d.is))
	d.si[s] = y
	d.is = append(d.is, s)
	d.cnt = append(d.cnt, 1)
	return
}

// NotCount returns the dense index of s, inserting it with zero frequency if
// absent.
func (d *FreqDict) NotCount(s string) (y int32) {
	if y, ok := d.si[s]; ok {
		return y
	}
	y = int32(len(d.is))
	d.si[s] = y
	d.is = append(d.is, s)
	d.cnt = append(d.cnt, 0)
	return
}

// Lookup returns the dense index of s without inserting it.
func (d *FreqDict) Lookup(s string) (int32, bool) {
	y, ok := d.si[s]
	return y, ok
}

func (d *FreqDict) String(id int32) (string, bool) {
	if id < 0 || id >= int32(len(d.is)) {
		return "", false
	}
	return d.is[id], true
}

func (d *FreqDict) Freq(id int32) int {
	if id < 0 || id >= int32(len(d.cnt)) {
		return 0
	}
	return d.cnt[id]
}
