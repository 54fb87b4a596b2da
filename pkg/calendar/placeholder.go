package calendar

import "github.com/spacecal/spacecal/pkg/event"

// placeholderEntries is the built-in dataset shown when real data cannot
// be loaded. Degrading to it instead of an empty calendar is deliberate;
// every fallback to it is logged. The entries are localOnly and are never
// pushed to the gateway.
func placeholderEntries() []Entry {
	drafts := []event.Event{
		{
			Id: "1", Title: "웨비나", Description: "프로젝트 진행 상황 논의",
			StartDate: "2025-09-02", StartTime: "14:00", EndDate: "2025-09-02", EndTime: "15:00",
			Type: event.TypeSelf, AuthorUid: "user1", AuthorName: "내가",
		},
		{
			Id: "2", Title: "텍스토어 업무", Description: "친구들과 만남",
			StartDate: "2025-09-02", StartTime: "18:00", EndDate: "2025-09-02", EndTime: "20:00",
			Type: event.TypeSelf, AuthorUid: "user1", AuthorName: "내가",
		},
		{
			Id: "3", Title: "새일즈", Description: "영업팀 회의",
			StartDate: "2025-09-03", StartTime: "10:00", EndDate: "2025-09-03", EndTime: "11:30",
			Type: event.TypeOther, AuthorUid: "user2", AuthorName: "김철수",
		},
		{
			Id: "4", Title: "저과", Description: "저녁 식사",
			StartDate: "2025-09-03", StartTime: "19:00", EndDate: "2025-09-03", EndTime: "21:00",
			Type: event.TypeShared, AuthorUid: "user1", AuthorName: "내가",
		},
		{
			Id: "5", Title: "두더지", Description: "게임",
			StartDate: "2025-09-05", StartTime: "20:00", EndDate: "2025-09-05", EndTime: "22:00",
			Type: event.TypeSelf, AuthorUid: "user3", AuthorName: "이영희",
		},
		{
			Id: "6", Title: "휴가", Description: "여행",
			StartDate: "2025-09-12", StartTime: "09:00", EndDate: "2025-09-15", EndTime: "18:00",
			Type: event.TypeShared, AuthorUid: "user1", AuthorName: "내가",
		},
	}

	entries := make([]Entry, 0, len(drafts))
	for _, e := range drafts {
		e.SyncLegacyFields()
		entries = append(entries, Entry{Event: e, Sync: StatusLocalOnly})
	}
	return entries
}
