/*
 * kws, (C) 2024 The kws Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kws

import "github.com/klauspost/cpuid/v2"

// SupportedAcceleration reports whether the running CPU has the
// wide-register features (AVX2) that let Parse batch-skip runs of
// plain ASCII-space whitespace instead of visiting them one byte at a
// time. Parsing results are identical either way; this only gates the
// byte-classification fast path, the same role the teacher's
// SupportedCPU played for its own structural-bit scan.
func SupportedAcceleration() bool {
	return cpuid.CPU.Supports(cpuid.AVX2)
}
