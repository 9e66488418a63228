package job

import (
	"math"
	"sort"

	"fixkaro/models"
)

const earthRadiusKm = 6371.0

// haversineKm computes the great-circle distance between two lat/lng pairs.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// ListAvailable is the matching feed: a snapshot of unassigned SEARCHING
// jobs for one worker, restricted to the worker's declared skills and sorted
// nearest first. Jobs without coordinates keep their relative order at the
// end of the list. Realtime change events trigger re-reads of this snapshot;
// the feed itself never subscribes.
func (s *DefaultJobService) ListAvailable(workerID string) ([]models.Job, error) {
	worker, err := s.ProfileRepo.GetByID(workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil || worker.Role != models.RoleWorker {
		return nil, ErrNotPermitted
	}
	if worker.WorkerStatus != models.WorkerVerified || !worker.Online {
		return nil, ErrWorkerNotEligible
	}

	jobs, err := s.Repo.ListAvailable(worker.Skills)
	if err != nil {
		return nil, err
	}

	if worker.LocationGeo.Valid() {
		sortByProximity(jobs, worker.LocationGeo)
	}
	return jobs, nil
}

// sortByProximity orders jobs by distance from the origin. The sort is
// stable so jobs lacking coordinates stay in their incoming order, after
// every located job.
func sortByProximity(jobs []models.Job, origin *models.GeoPoint) {
	dist := func(j *models.Job) float64 {
		if !j.LocationGeo.Valid() {
			return math.MaxFloat64
		}
		return haversineKm(origin.Lat(), origin.Lon(), j.LocationGeo.Lat(), j.LocationGeo.Lon())
	}
	sort.SliceStable(jobs, func(a, b int) bool {
		return dist(&jobs[a]) < dist(&jobs[b])
	})
}
