package ellipticmath

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}

	diff := math.Abs(a - b)
	if tol > 0 && tol < 1 {
		mag := math.Max(math.Abs(a), math.Abs(b))
		if mag > 1 {
			return diff/mag < tol
		}
	}

	return diff < tol
}

func TestLanden_Convergence(t *testing.T) {
	v := Landen(0.5, 1e-15)
	if len(v) == 0 {
		t.Fatal("Landen returned empty sequence")
	}

	last := v[len(v)-1]
	if last > 1e-15 {
		t.Fatalf("Landen did not converge: last value = %e", last)
	}

	for i := 1; i < len(v); i++ {
		if v[i] >= v[i-1] {
			t.Fatalf("Landen not monotonically decreasing at index %d: %e >= %e", i, v[i], v[i-1])
		}
	}
}

func TestLanden_Limits(t *testing.T) {
	v0 := Landen(0, 1e-15)
	if len(v0) != 1 || v0[0] != 0 {
		t.Fatalf("Landen(0) = %v, expected [0]", v0)
	}

	v1 := Landen(1, 1e-15)
	if len(v1) != 1 || v1[0] != 1 {
		t.Fatalf("Landen(1) = %v, expected [1]", v1)
	}
}

func TestLanden_FixedIterations(t *testing.T) {
	const iter = 6

	v := Landen(0.5, iter)
	if len(v) != iter {
		t.Fatalf("Landen fixed-iteration length = %d, want %d", len(v), iter)
	}

	for i := 1; i < len(v); i++ {
		if v[i] >= v[i-1] {
			t.Fatalf("fixed-iteration Landen not monotonically decreasing at index %d", i)
		}
	}
}

func TestLandenK_MatchesEllipK(t *testing.T) {
	k := 0.6
	v := Landen(k, 1e-15)
	got := LandenK(v)

	want, _ := EllipK(k, 1e-15)
	if !almostEqual(got, want, 1e-12) {
		t.Fatalf("LandenK mismatch: got=%g want=%g", got, want)
	}
}

func TestEllipK_KnownValues(t *testing.T) {
	K, Kp := EllipK(0, 1e-15)
	if !almostEqual(K, math.Pi/2, 1e-10) {
		t.Fatalf("K(0) = %v, expected pi/2 = %v", K, math.Pi/2)
	}

	if !math.IsInf(Kp, 1) {
		t.Fatalf("K'(0) = %v, expected +Inf", Kp)
	}

	K1, _ := EllipK(1, 1e-15)
	if !math.IsInf(K1, 1) {
		t.Fatalf("K(1) = %v, expected +Inf", K1)
	}
}

func TestEllipK_SymmetryRelation(t *testing.T) {
	k := 0.6
	kp := math.Sqrt(1 - k*k)
	K, Kprime := EllipK(k, 1e-15)
	Kkp, Kpkp := EllipK(kp, 1e-15)
	ratio1 := K / Kprime

	ratio2 := Kpkp / Kkp
	if !almostEqual(ratio1, ratio2, 1e-8) {
		t.Fatalf("symmetry: K/K' = %v, K'(k')/K(k') = %v", ratio1, ratio2)
	}
}

func TestCDE_RealInputRange(t *testing.T) {
	k := 0.5

	for _, uVal := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		u := complex(uVal, 0)

		cd := CDE(u, k, 1e-15)
		if math.Abs(imag(cd)) > 1e-10 {
			t.Fatalf("CDE(%v, %v): imaginary part = %v, expected ~0", uVal, k, imag(cd))
		}

		cdReal := real(cd)
		if cdReal < -0.01 || cdReal > 1.01 {
			t.Fatalf("CDE(%v, %v) = %v, outside expected range [0,1]", uVal, k, cdReal)
		}
	}
}

func TestCDE_Endpoints(t *testing.T) {
	k := 0.7

	cd0 := CDE(0, k, 1e-15)
	if !almostEqual(real(cd0), 1.0, 1e-10) {
		t.Fatalf("CDE(0, %v) = %v, expected 1", k, cd0)
	}

	cd1 := CDE(1, k, 1e-15)
	if !almostEqual(real(cd1), 0.0, 1e-10) {
		t.Fatalf("CDE(1, %v) = %v, expected 0", k, cd1)
	}
}

func TestSNE_Endpoints(t *testing.T) {
	k := 0.5

	s0 := SNE([]float64{0}, k, 1e-15)
	if !almostEqual(s0[0], 0.0, 1e-10) {
		t.Fatalf("SNE(0) = %v, expected 0", s0[0])
	}

	s1 := SNE([]float64{1}, k, 1e-15)
	if !almostEqual(s1[0], 1.0, 1e-10) {
		t.Fatalf("SNE(1) = %v, expected 1", s1[0])
	}
}

func TestDegreeParam_SatisfiesDegreeEquation(t *testing.T) {
	tests := []struct {
		n   int
		m1  float64
		tol float64
	}{
		{2, 0.25, 1e-6},
		{4, 0.09, 1e-6},
		{5, 1e-4, 1e-6},
	}

	for _, tt := range tests {
		m := DegreeParam(tt.n, tt.m1)
		if !(m > 0 && m < 1) {
			t.Fatalf("DegreeParam(%d, %g) = %v, expected in (0,1)", tt.n, tt.m1, m)
		}

		K, Kp := EllipK(math.Sqrt(m), 1e-15)
		K1, K1p := EllipK(math.Sqrt(tt.m1), 1e-15)

		lhs := float64(tt.n) * Kp / K
		rhs := K1p / K1
		if !almostEqual(lhs, rhs, tt.tol) {
			t.Fatalf("n=%d: N*K'/K=%v, K1'/K1=%v", tt.n, lhs, rhs)
		}
	}

	if !math.IsNaN(DegreeParam(0, 0.5)) || !math.IsNaN(DegreeParam(3, 1.5)) {
		t.Fatal("expected NaN for invalid input")
	}
}

func TestJacobi_Identities(t *testing.T) {
	for _, m := range []float64{0, 0.3, 0.9} {
		K, _ := EllipK(math.Sqrt(m), Tol)
		for _, frac := range []float64{0, 0.25, 0.5, 0.9} {
			sn, cn, dn, ok := Jacobi(frac*K, m)
			if !ok {
				t.Fatalf("Jacobi(%v, %v) failed", frac*K, m)
			}

			if !almostEqual(sn*sn+cn*cn, 1, 1e-10) {
				t.Fatalf("m=%v u=%vK: sn^2+cn^2=%v", m, frac, sn*sn+cn*cn)
			}

			if !almostEqual(dn*dn+m*sn*sn, 1, 1e-10) {
				t.Fatalf("m=%v u=%vK: dn^2+m sn^2=%v", m, frac, dn*dn+m*sn*sn)
			}
		}
	}

	// m=0 degenerates to the circular functions.
	sn, cn, dn, _ := Jacobi(0.7, 0)
	if !almostEqual(sn, math.Sin(0.7), 1e-12) || !almostEqual(cn, math.Cos(0.7), 1e-12) || dn != 1 {
		t.Fatalf("Jacobi(0.7, 0) = (%v, %v, %v)", sn, cn, dn)
	}

	if _, _, _, ok := Jacobi(1, 1); ok {
		t.Fatal("expected failure for m=1")
	}
}

func TestArcSC1_InvertsJacobi(t *testing.T) {
	// sc(v, 1-m) = sn/cn evaluated with the complementary parameter.
	m := 0.2
	v := ArcSC1(0.8, m)
	if math.IsNaN(v) {
		t.Fatal("ArcSC1 returned NaN")
	}

	sn, cn, _, ok := Jacobi(v, 1-m)
	if !ok {
		t.Fatal("Jacobi failed")
	}

	if !almostEqual(sn/cn, 0.8, 1e-8) {
		t.Fatalf("sc(ArcSC1(0.8)) = %v, want 0.8", sn/cn)
	}
}
