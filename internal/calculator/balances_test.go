package calculator

import (
	"testing"

	"github.com/mmynk/circleledger/internal/models"
)

func roster(ids ...string) []models.Member {
	members := make([]models.Member, len(ids))
	for i, id := range ids {
		members[i] = models.Member{MemberID: id, DisplayName: "name-" + id, Role: models.RoleMember}
	}
	return members
}

func expense(id, payer string, amount int64, status models.ExpenseStatus, shares map[string]int64, order ...string) *models.Expense {
	e := &models.Expense{ID: id, PayerMemberID: payer, AmountYen: amount, Status: status}
	for _, m := range order {
		e.Shares = append(e.Shares, models.ExpenseShare{MemberID: m, MemberSnapshotName: "snap-" + m, ShareYen: shares[m]})
	}
	return e
}

func TestComputeBalances_TripScenario(t *testing.T) {
	trip := expense("e1", "M1", 9000, models.StatusActive,
		map[string]int64{"M1": 3000, "M2": 3000, "M3": 3000}, "M1", "M2", "M3")

	balances := ComputeBalances([]*models.Expense{trip}, roster("M1", "M2", "M3"))

	want := []models.MemberBalance{
		{MemberID: "M1", DisplayName: "name-M1", PaidYen: 9000, OwedYen: 3000, NetYen: 6000},
		{MemberID: "M2", DisplayName: "name-M2", PaidYen: 0, OwedYen: 3000, NetYen: -3000},
		{MemberID: "M3", DisplayName: "name-M3", PaidYen: 0, OwedYen: 3000, NetYen: -3000},
	}
	if len(balances) != len(want) {
		t.Fatalf("got %d balances, want %d", len(balances), len(want))
	}
	for i := range want {
		if balances[i] != want[i] {
			t.Errorf("balance %d = %+v, want %+v", i, balances[i], want[i])
		}
	}
}

func TestComputeBalances_ZeroActivityMembersIncluded(t *testing.T) {
	lunch := expense("e1", "A", 1000, models.StatusActive,
		map[string]int64{"A": 500, "B": 500}, "A", "B")

	balances := ComputeBalances([]*models.Expense{lunch}, roster("A", "B", "Idle"))
	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}
	idle := balances[2]
	if idle.MemberID != "Idle" || idle.PaidYen != 0 || idle.OwedYen != 0 || idle.NetYen != 0 {
		t.Errorf("expected all-zero balance for Idle, got %+v", idle)
	}
}

func TestComputeBalances_SkipsVoid(t *testing.T) {
	voided := expense("e1", "A", 1000, models.StatusVoid,
		map[string]int64{"A": 500, "B": 500}, "A", "B")
	active := expense("e2", "B", 300, models.StatusActive,
		map[string]int64{"A": 100, "B": 200}, "A", "B")

	balances := ComputeBalances([]*models.Expense{voided, active}, roster("A", "B"))
	if balances[0].NetYen != -100 || balances[1].NetYen != 100 {
		t.Errorf("void expense leaked into balances: %+v", balances)
	}
}

func TestComputeBalances_OffRosterMembersAppended(t *testing.T) {
	e := expense("e1", "A", 900, models.StatusActive,
		map[string]int64{"A": 300, "Z": 300, "Y": 300}, "A", "Z", "Y")

	balances := ComputeBalances([]*models.Expense{e}, roster("A"))
	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d: %+v", len(balances), balances)
	}
	if balances[1].MemberID != "Y" || balances[2].MemberID != "Z" {
		t.Errorf("off-roster members should follow sorted by id, got %s, %s", balances[1].MemberID, balances[2].MemberID)
	}
	if balances[1].DisplayName != "snap-Y" {
		t.Errorf("expected snapshot name for off-roster member, got %q", balances[1].DisplayName)
	}

	var sum int64
	for _, b := range balances {
		sum += b.NetYen
	}
	if sum != 0 {
		t.Errorf("net balances sum to %d, want 0", sum)
	}
}

func TestComputeBalances_PayerOutsideParticipants(t *testing.T) {
	gift := expense("e1", "P", 1000, models.StatusActive,
		map[string]int64{"A": 500, "B": 500}, "A", "B")

	balances := ComputeBalances([]*models.Expense{gift}, roster("A", "B", "P"))
	if balances[2].PaidYen != 1000 || balances[2].OwedYen != 0 || balances[2].NetYen != 1000 {
		t.Errorf("unexpected payer balance %+v", balances[2])
	}
}
